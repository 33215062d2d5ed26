package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// setupSignalHandler returns a channel that is closed when SIGINT or SIGTERM
// arrives, and a function that stops watching.
func setupSignalHandler(stderr io.Writer) (<-chan struct{}, func()) {
	shutdown := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			fmt.Fprintf(stderr, "\nReceived signal: %v\n", sig)
			close(shutdown)
		case <-done:
		}
		signal.Stop(sigChan)
	}()

	return shutdown, func() { close(done) }
}
