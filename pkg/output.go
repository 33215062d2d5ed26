package dirsum

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/google/vectorio"
)

// writeLines writes each line followed by a newline. Writes to an *os.File go
// out through writev in IOV_MAX sized chunks; any short write is completed
// with a plain write of the remainder.
func writeLines(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	file, ok := w.(*os.File)
	if !ok {
		return writeLinesBuffered(w, lines)
	}

	buffers := make([][]byte, len(lines))
	for i, line := range lines {
		buffers[i] = append([]byte(line), '\n')
	}

	fd := file.Fd()
	for offset := 0; offset < len(buffers); offset += fallbackIOVMax {
		end := offset + fallbackIOVMax
		if end > len(buffers) {
			end = len(buffers)
		}
		chunk := buffers[offset:end]

		iovecs := make([]syscall.Iovec, len(chunk))
		expected := 0
		for i, buf := range chunk {
			iovecs[i].Base = &buf[0]
			iovecs[i].SetLen(len(buf))
			expected += len(buf)
		}

		nw, err := vectorio.WritevRaw(fd, iovecs)
		if err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
		if nw < expected {
			if err := writeRemainder(file, chunk, nw); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeRemainder writes whatever part of chunk was not covered by the first skip bytes
func writeRemainder(w io.Writer, chunk [][]byte, skip int) error {
	for _, buf := range chunk {
		if skip >= len(buf) {
			skip -= len(buf)
			continue
		}
		if _, err := w.Write(buf[skip:]); err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
		skip = 0
	}
	return nil
}

func writeLinesBuffered(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write listing: %w", err)
	}
	return nil
}
