package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"

	"github.com/kestrel-sh/bish/internal/bash"
	"github.com/kestrel-sh/bish/internal/completion"
	"github.com/kestrel-sh/bish/internal/core"
	"github.com/kestrel-sh/bish/internal/history"
	"github.com/kestrel-sh/bish/internal/styles"
)

var BUILD_VERSION = "dev"

//go:embed .bishrc.default
var DEFAULT_VARS []byte

var command = flag.String("c", "", "run a command")
var loginShell = flag.Bool("l", false, "run as a login shell")
var rcFile = flag.String("rcfile", "", "use a custom rc file instead of ~/.bishrc")
var strictConfig = flag.Bool("strict-config", false, "fail fast if configuration files contain errors (like bash 'set -e')")

var helpFlag bool
var versionFlag bool

func init() {
	flag.BoolVar(&helpFlag, "h", false, "display help information")
	flag.BoolVar(&helpFlag, "help", false, "display help information")

	flag.BoolVar(&versionFlag, "v", false, "display build version")
	flag.BoolVar(&versionFlag, "ver", false, "display build version")
	flag.BoolVar(&versionFlag, "version", false, "display build version")

	if err := zap.RegisterSink("zstd", newCompressedSink); err != nil {
		panic(fmt.Sprintf("failed to register zstd sink: %v", err))
	}
}

// main is the entry point of the bish shell program. It supports four
// execution modes: version display (-v), help display (-h), single-command
// execution (-c), and either an interactive shell or a script runner
// depending on whether stdin is a terminal.
func main() {
	flag.Parse()

	if versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if helpFlag {
		printUsage()
		return
	}

	histEngine := history.New()
	if entries, err := history.LoadFile(core.HistoryFile()); err == nil {
		histEngine.Merge(entries)
	}
	defer func() {
		if err := histEngine.SaveFile(core.HistoryFile()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save history: %v\n", err)
		}
	}()

	completionManager := completion.NewCompletionManager()

	stderrCapturer := core.NewStderrCapturer(os.Stderr)

	runner, err := initializeRunner(completionManager, stderrCapturer)
	if err != nil {
		panic(err)
	}

	logger, err := initializeLogger(runner)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("-------- new bish session --------", zap.Any("args", os.Args))

	err = run(runner, histEngine, completionManager, logger, stderrCapturer)

	if code, ok := interp.IsExitStatus(err); ok {
		os.Exit(int(code))
	}

	if err != nil {
		logger.Error("unhandled error", zap.Error(err))
		os.Exit(1)
	}
}

func run(
	runner *interp.Runner,
	histEngine *history.Engine,
	completionManager *completion.CompletionManager,
	logger *zap.Logger,
	stderrCapturer *core.StderrCapturer,
) error {
	ctx := context.Background()

	// bish -c "echo hello"
	if *command != "" {
		return bash.RunScriptFromReader(ctx, runner, strings.NewReader(*command), "bish")
	}

	// bish
	if flag.NArg() == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return core.RunInteractiveShell(ctx, runner, histEngine, completionManager, logger, stderrCapturer)
		}

		return bash.RunScriptFromReader(ctx, runner, os.Stdin, "bish")
	}

	// bish script.sh
	for _, filePath := range flag.Args() {
		if err := bash.RunScriptFromFile(ctx, runner, filePath); err != nil {
			return err
		}
	}

	return nil
}

func printUsage() {
	fmt.Println(styles.INFO("Usage:") + " bish [flags] [script]")
	fmt.Println("\nA line-edited POSIX-compatible shell.")
	fmt.Println()

	fmt.Println(styles.INFO("Options:"))

	printed := make(map[string]bool)

	flag.VisitAll(func(f *flag.Flag) {
		if printed[f.Name] {
			return
		}

		aliases := []string{f.Name}
		flag.VisitAll(func(p *flag.Flag) {
			if p.Name == f.Name {
				return
			}
			if p.Usage == f.Usage {
				aliases = append(aliases, p.Name)
				printed[p.Name] = true
			}
		})
		printed[f.Name] = true

		var shortFlags, longFlags []string
		for _, name := range aliases {
			if len(name) == 1 {
				shortFlags = append(shortFlags, "-"+name)
			} else {
				longFlags = append(longFlags, "-"+name)
			}
		}

		flagStr := ""
		if len(shortFlags) > 0 {
			flagStr = strings.Join(shortFlags, ", ")
		}
		if len(longFlags) > 0 {
			if flagStr != "" {
				flagStr += ", "
			}
			flagStr += strings.Join(longFlags, ", ")
		}

		argName, usage := flag.UnquoteUsage(f)
		if argName != "" {
			flagStr += " <" + argName + ">"
		}

		fmt.Printf("  %-28s %s\n", flagStr, usage)
	})

	fmt.Println()
	fmt.Println(styles.INFO("Key Bindings:"))
	fmt.Printf("  %-28s %s\n", "Tab", "Complete the current word")
	fmt.Printf("  %-28s %s\n", "Ctrl+R", "Fuzzy search command history")
	fmt.Printf("  %-28s %s\n", "Up / Down", "Walk through command history")
}

// newCompressedSink creates a new compressed sink from a URL. The URL path
// should point to the log file location. Implements proper zstd frame
// continuation by checking if the existing file contains valid zstd frames
// and appending new frames appropriately.
func newCompressedSink(u *url.URL) (zap.Sink, error) {
	filePath := u.Path

	flags := os.O_CREATE | os.O_WRONLY

	fileInfo, err := os.Stat(filePath)
	if err == nil && fileInfo.Size() > 0 {
		if isValidZstdFile(filePath) {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
	}

	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return nil, err
	}

	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return &compressedSink{
		file:    file,
		encoder: encoder,
	}, nil
}

// isValidZstdFile checks if a file starts with a valid zstd magic number.
// Returns false if file doesn't exist, is empty, or has invalid header.
func isValidZstdFile(filePath string) bool {
	file, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer func() {
		_ = file.Close()
	}()

	buf := make([]byte, 4)
	n, err := file.Read(buf)
	if err != nil || n < 4 {
		return false
	}

	return buf[0] == 0x28 && buf[1] == 0xB5 && buf[2] == 0x2F && buf[3] == 0xFD
}

// compressedSink wraps a zstd encoder to provide compressed log file
// writing. It implements the WriteSyncer interface required by zap's
// custom sinks.
type compressedSink struct {
	file    *os.File
	encoder *zstd.Encoder
}

func (s *compressedSink) Write(p []byte) (int, error) {
	_, err := s.encoder.Write(p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *compressedSink) Sync() error {
	if err := s.encoder.Flush(); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *compressedSink) Close() error {
	encErr := s.encoder.Close()
	fileErr := s.file.Close()

	if encErr != nil {
		return encErr
	}
	return fileErr
}

func initializeLogger(runner *interp.Runner) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if BUILD_VERSION == "dev" {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	if err := core.RotateLogFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to rotate log files: %v\n", err)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = level
	loggerConfig.OutputPaths = []string{
		"zstd://" + core.LogFile(),
	}
	return loggerConfig.Build()
}

// initializeRunner loads the shell configuration files and sets up the
// interpreter.
func initializeRunner(completionManager *completion.CompletionManager, stderrCapturer *core.StderrCapturer) (*interp.Runner, error) {
	shellPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	env := append(os.Environ(),
		"SHELL="+shellPath,
		"BISH_BUILD_VERSION="+BUILD_VERSION,
	)

	runner, err := interp.New(
		interp.Interactive(true),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(os.Stdin, os.Stdout, stderrCapturer),
		interp.ExecHandlers(
			core.NewAutocdExecHandler(), // must be first to intercept path-like commands
			bash.NewCdCommandHandler(),
			completion.NewCompleteCommandHandler(completionManager),
		),
	)
	if err != nil {
		return nil, err
	}

	core.SetAutocdRunner(runner)
	bash.SetCdRunner(runner)

	if err := bash.RunScriptFromReader(context.Background(), runner, bytes.NewReader(DEFAULT_VARS), "bish"); err != nil {
		return nil, err
	}

	var configFiles []string
	if *rcFile != "" {
		configFiles = []string{*rcFile}
	} else {
		configFiles = []string{
			filepath.Join(core.HomeDir(), ".bishrc"),
			filepath.Join(core.HomeDir(), ".bishenv"),
		}

		if *loginShell || strings.HasPrefix(os.Args[0], "-") {
			configFiles = append(
				[]string{
					"/etc/profile",
					filepath.Join(core.HomeDir(), ".bish_profile"),
				},
				configFiles...,
			)
		}
	}

	for _, configFile := range configFiles {
		if stat, err := os.Stat(configFile); err == nil && stat.Size() > 0 {
			if err := bash.RunScriptFromFile(context.Background(), runner, configFile); err != nil {
				fmt.Fprintf(os.Stderr, "Configuration file %s contains errors: %v\n", configFile, err)

				if *strictConfig {
					return nil, fmt.Errorf("aborting due to configuration error in %s: %w", configFile, err)
				}
			}
		}
	}

	return runner, nil
}
