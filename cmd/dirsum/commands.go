package main

import (
	"fmt"
	"io"
	"strings"

	dirsum "github.com/mattkeenan/dirsum/pkg"
)

// commandEnv carries everything a command needs
type commandEnv struct {
	rootDir  string
	config   *dirsum.Config
	stdout   io.Writer
	shutdown <-chan struct{}
}

// openTree builds the tree for the configured root
func (env *commandEnv) openTree() (*dirsum.Tree, error) {
	tree, err := dirsum.NewTree(env.rootDir)
	if err != nil {
		return nil, err
	}

	bufferSize, err := env.config.HashBufferSize()
	if err != nil {
		return nil, fmt.Errorf("checksum.buffer: %w", err)
	}
	tree.SetHashBuffer(bufferSize)
	tree.SetShutdownChannel(env.shutdown)
	return tree, nil
}

// command is one entry of the dispatch table
type command struct {
	name        string
	usage       string
	description string
	maxArgs     int
	run         func(env *commandEnv, args []string) error
}

var commands = []*command{
	{
		name:        "list",
		usage:       "list",
		description: "List files present in the root and its sub-directories",
		run:         runList,
	},
	{
		name:        "md5",
		usage:       "md5",
		description: "Compute an MD5 digest of all files in the root and its sub-directories",
		run:         runMD5,
	},
	{
		name:        "checksum",
		usage:       "checksum [ALGORITHM]",
		description: "Compute a digest with ALGORITHM (default from checksum.algorithm)",
		maxArgs:     1,
		run:         runChecksum,
	},
	{
		name:        "h1",
		usage:       "h1",
		description: "Compute the Go module h1: hash of all files",
		run:         runHash1,
	},
	{
		name:        "algorithms",
		usage:       "algorithms",
		description: "List supported digest algorithms",
		run:         runAlgorithms,
	},
	{
		name:        "config",
		usage:       "config [show|init]",
		description: "Show the effective configuration or write the defaults",
		maxArgs:     1,
		run:         runConfig,
	},
}

func findCommand(name string) *command {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd
		}
	}
	return nil
}

func runList(env *commandEnv, args []string) error {
	tree, err := env.openTree()
	if err != nil {
		return err
	}
	return tree.List(env.stdout)
}

func runMD5(env *commandEnv, args []string) error {
	tree, err := env.openTree()
	if err != nil {
		return err
	}
	return tree.MD5(env.stdout)
}

func runChecksum(env *commandEnv, args []string) error {
	algorithm := env.config.GetChecksumConfig().Algorithm
	if len(args) > 0 {
		algorithm = args[0]
	}
	// Reject unknown names before touching the filesystem.
	if err := dirsum.ValidateHashAlgorithm(algorithm); err != nil {
		return err
	}

	tree, err := env.openTree()
	if err != nil {
		return err
	}
	return tree.PrintChecksum(env.stdout, algorithm)
}

func runHash1(env *commandEnv, args []string) error {
	tree, err := env.openTree()
	if err != nil {
		return err
	}
	sum, err := tree.Hash1()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.stdout, sum)
	return err
}

func runAlgorithms(env *commandEnv, args []string) error {
	_, err := fmt.Fprintln(env.stdout, strings.Join(dirsum.SupportedAlgorithms(), "\n"))
	return err
}

func runConfig(env *commandEnv, args []string) error {
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "show":
		fmt.Fprintf(env.stdout, "# %s (exists: %t)\n", env.config.Path(), env.config.Loaded())
		_, err := env.config.WriteTo(env.stdout)
		return err
	case "init":
		if env.config.Loaded() {
			return fmt.Errorf("config file %s already exists", env.config.Path())
		}
		if err := env.config.Save(); err != nil {
			return err
		}
		fmt.Fprintf(env.stdout, "wrote %s\n", env.config.Path())
		return nil
	default:
		return fmt.Errorf("unknown config action '%s' (supported: show, init)", action)
	}
}
