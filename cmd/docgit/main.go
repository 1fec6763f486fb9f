// Command docgit keeps git repositories in a document store.
//
// Usage:
//
//	docgit [--config file] [--json] [--verbose] <command> [flags] [args]
//
// Commands:
//
//	init      create a repository
//	clone     clone a remote repository into the store
//	log       list commits
//	commit    stage and commit changes
//	branches  list branches
//	ls        list a directory of the store
//	import    copy a local directory into the store
//	cat       print a file of the store
//	stat      print the stats of a store entry as JSON
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/platform"
	"github.com/GenerousLabs/expo-fs/fs/shim"
	"github.com/GenerousLabs/expo-fs/internal/config"
	"github.com/GenerousLabs/expo-fs/internal/logging"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// app carries what every command needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    platform.Platform
	shimOpts []shim.Option
	fsys     *shim.FS
	stdout   io.Writer
	stderr   io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"init":     {"create a repository", runInit},
	"clone":    {"clone a remote repository into the store", runClone},
	"log":      {"list commits", runLog},
	"commit":   {"stage and commit changes", runCommit},
	"branches": {"list branches", runBranches},
	"ls":       {"list a directory of the store", runLs},
	"import":   {"copy a local directory into the store", runImport},
	"cat":      {"print a file of the store", runCat},
	"stat":     {"print the stats of a store entry as JSON", runStat},
}

// usageError is returned for bad invocations; it exits with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("docgit", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "configuration file")
	jsonErrors := global.Bool("json", false, "print errors as JSON")
	verbose := global.Bool("verbose", false, "log every filesystem call")
	global.Usage = func() { printUsage(global) }

	if err := global.Parse(args); err != nil {
		return exitUsage
	}
	if global.NArg() == 0 {
		printUsage(global)
		return exitUsage
	}

	name := global.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "docgit: unknown command %q\n", name)
		printUsage(global)
		return exitUsage
	}

	a, err := newApp(ctx, *configPath, *verbose, stdout, stderr)
	if err == nil {
		err = cmd.run(ctx, a, global.Args()[1:])
	}
	if err == nil {
		return exitOK
	}

	var uerr *usageError
	if fserrors.As(err, &uerr) {
		fmt.Fprintf(stderr, "docgit %s: %v\n", name, err)
		return exitUsage
	}
	printError(stderr, err, *jsonErrors)
	return exitError
}

func newApp(ctx context.Context, configPath string, verbose bool, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(stderr, level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	store, err := cfg.Platform(ctx, logger)
	if err != nil {
		return nil, err
	}
	shimOpts := cfg.ShimOptions(logger)

	logger.Debug("opened store", "type", store.Type().String(), "dir", store.DocumentDirectory(), "config", cfg.Path())
	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		shimOpts: shimOpts,
		fsys:     shim.New(store, shimOpts...),
		stdout:   stdout,
		stderr:   stderr,
	}, nil
}

func printError(w io.Writer, err error, asJSON bool) {
	if asJSON {
		_ = writeJSON(w, fserrors.ToJSON(err))
		return
	}
	fmt.Fprintf(w, "docgit: %v\n", err)
}

func printUsage(global *flag.FlagSet) {
	w := global.Output()
	fmt.Fprintln(w, "usage: docgit [flags] <command> [args]")
	fmt.Fprintln(w, "\nflags:")
	global.PrintDefaults()
	fmt.Fprintln(w, "\ncommands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, commands[name].summary)
	}
}
