package main

import (
	"fmt"
	"io"
	"os"

	dirsum "github.com/mattkeenan/dirsum/pkg"
)

// version is overridden at link time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newOptions() *ParsedOptions {
	options := NewParsedOptions()
	options.DefineOption("help", "h", OptionTypeBool, "false", "Show help message")
	options.DefineOption("version", "", OptionTypeBool, "false", "Show version information")
	options.DefineOption("verbose", "v", OptionTypeInt, "0", "Enable verbose output (can be repeated for more verbosity)")
	options.DefineOption("debug", "", OptionTypeString, "", "Enable debug flags (comma-separated: walk, hash, config)")
	options.DefineOption("root", "", OptionTypeString, ".", "Directory to list and hash")
	options.DefineOption("config", "", OptionTypeString, "", "Config file (default: $XDG_CONFIG_HOME/dirsum/config)")
	options.DefineOption("set", "", OptionTypeList, "", "Override a config value, e.g. --set=algorithm:sha256 (repeatable)")
	return options
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	options := newOptions()
	if err := options.Parse(args); err != nil {
		fmt.Fprintf(stderr, "dirsum: %v\n", err)
		fmt.Fprintf(stderr, "Try 'dirsum --help' for more information.\n")
		return 1
	}

	if options.GetBool("version") {
		fmt.Fprintf(stdout, "dirsum %s\n", version)
		return 0
	}

	positional := options.GetArgs()
	if options.GetBool("help") || (len(positional) > 0 && positional[0] == "help") {
		showHelp(stdout, options)
		return 0
	}
	if len(positional) == 0 {
		fmt.Fprintf(stderr, "Usage: dirsum [GLOBAL_OPTIONS] <command> [ARGS]\n")
		fmt.Fprintf(stderr, "Try 'dirsum --help' for more information.\n")
		return 1
	}

	cmd := findCommand(positional[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "dirsum: unknown command '%s'\n", positional[0])
		fmt.Fprintf(stderr, "Try 'dirsum --help' for more information.\n")
		return 1
	}
	cmdArgs := positional[1:]
	if len(cmdArgs) > cmd.maxArgs {
		fmt.Fprintf(stderr, "dirsum: too many arguments for %s\n", cmd.name)
		fmt.Fprintf(stderr, "Usage: dirsum %s\n", cmd.usage)
		return 1
	}

	config, err := loadConfig(options)
	if err != nil {
		fmt.Fprintf(stderr, "dirsum: %v\n", err)
		return 1
	}

	shutdown, stop := setupSignalHandler(stderr)
	defer stop()

	env := &commandEnv{
		rootDir:  options.GetString("root"),
		config:   config,
		stdout:   stdout,
		shutdown: shutdown,
	}

	if err := cmd.run(env, cmdArgs); err != nil {
		fmt.Fprintf(stderr, "dirsum: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file, applies overrides and sets up logging.
// Command line verbosity wins over the config file.
func loadConfig(options *ParsedOptions) (*dirsum.Config, error) {
	if options.IsSet("debug") {
		dirsum.SetDebugFlags(options.GetString("debug"))
	}

	configPath := options.GetString("config")
	if configPath == "" {
		var err error
		if configPath, err = dirsum.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	config, err := dirsum.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyOverrides(options.GetList("set")); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	verboseConfig := config.GetVerboseConfig()
	level := verboseConfig.Level
	if options.IsSet("verbose") {
		level = options.GetInt("verbose")
	}
	dirsum.SetVerboseLevel(level)

	if !options.IsSet("debug") {
		dirsum.SetDebugFlags(verboseConfig.Debug)
	}

	dirsum.VerboseLog(1, "config: %s (exists: %t)", config.Path(), config.Loaded())
	return config, nil
}

func showHelp(w io.Writer, options *ParsedOptions) {
	fmt.Fprintf(w, "dirsum - list and hash the files under a directory\n\n")
	fmt.Fprintf(w, "Usage: dirsum [GLOBAL_OPTIONS] <command> [ARGS]\n\n")

	fmt.Fprintf(w, "COMMANDS:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-22s %s\n", cmd.usage, cmd.description)
	}

	fmt.Fprintf(w, "\nGLOBAL OPTIONS:\n")
	options.WriteUsage(w)

	fmt.Fprintf(w, "\nEXAMPLES:\n")
	fmt.Fprintf(w, "  dirsum list                          # Files under the current directory\n")
	fmt.Fprintf(w, "  dirsum md5                           # One MD5 digest over all files\n")
	fmt.Fprintf(w, "  dirsum --root=src checksum sha256    # SHA-256 over src/\n")
	fmt.Fprintf(w, "  dirsum --set=buffer:64K -v md5       # Smaller read buffer, verbose\n")
}
