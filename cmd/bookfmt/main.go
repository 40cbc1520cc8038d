package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	bookfmt "github.com/raj05122001/textbook-machine-sub001"
	"github.com/raj05122001/textbook-machine-sub001/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the command line in args and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) > 1 {
		switch args[1] {
		case "doctor":
			return runDoctorCmd(args[2:], env)
		case "help":
			return runHelp(args[2:], env)
		}
	}

	f, inputs, err := parseFlags(args[1:], env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "bookfmt: %v\nRun 'bookfmt --help' for usage.\n", err)
		return ExitUsage
	}

	if f.output.version {
		fmt.Fprintf(env.Stdout, "bookfmt %s\n", Version)
		return ExitSuccess
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return reportError(env, err)
	}

	if f.output.printConfig {
		out, err := config.Marshal(cfg)
		if err != nil {
			return reportError(env, err)
		}
		_, _ = env.Stdout.Write(out)
		return ExitSuccess
	}

	log := newLogger(env.Stderr, f.common.verbose, f.common.quiet)
	defer func() { _ = log.Sync() }()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	undo, _ := maxprocs.Set(maxprocs.Logger(log.Sugar().Debugf))
	defer undo()

	opts, err := buildOptions(cfg, log)
	if err != nil {
		return reportError(env, err)
	}

	poolSize := bookfmt.ResolvePoolSize(cfg.Workers)
	log.Debug("starting conversion", zap.Int("pool", poolSize), zap.String("version", Version))

	pool := env.NewPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("closing converters", zap.Error(err))
		}
	}()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, inputs, f, cfg, pool, env, log); err != nil {
		return reportError(env, err)
	}
	return ExitSuccess
}

// reportError prints err with its hint and returns its exit code.
func reportError(env *Environment, err error) int {
	fmt.Fprintf(env.Stderr, "bookfmt: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}
