package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"freee-timecard/internal/di"
	"freee-timecard/internal/domain/entity"
	"freee-timecard/internal/infrastructure/config"

	"github.com/spf13/pflag"
)

const appName = config.AppName

type options struct {
	action      entity.Action
	nonHeadless bool
	help        bool
}

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// deps holds the collaborators run would otherwise build itself.
type deps struct {
	env     *config.EnvService
	site    entity.Site
	newPage di.PageFactory
}

func newFlagSet() (*pflag.FlagSet, *bool) {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	nonHeadless := fs.BoolP("non-headless", "n", false, "show the browser window instead of running headless")
	return fs, nonHeadless
}

func parseArgs(args []string) (*options, error) {
	fs, nonHeadless := newFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return &options{help: true}, nil
		}
		return nil, usageError{err}
	}

	switch fs.NArg() {
	case 0:
		return nil, usageError{errors.New("missing command")}
	case 1:
	default:
		return nil, usageError{fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args()[1:], " "))}
	}

	action, err := entity.ParseAction(fs.Arg(0))
	if err != nil {
		return nil, usageError{err}
	}
	return &options{action: action, nonHeadless: *nonHeadless}, nil
}

func printUsage(w io.Writer) {
	fs, _ := newFlagSet()
	fmt.Fprintf(w, "Usage: %s [flags] <command>\n\nCommands:\n", appName)
	for _, a := range entity.Actions() {
		label, _ := entity.FreeeHR.Label(a)
		fmt.Fprintf(w, "  %-12s press %s\n", a, label)
	}
	fmt.Fprintf(w, "\nFlags:\n%s", fs.FlagUsages())
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, d deps) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n\n", err)
		printUsage(stderr)
		return 1
	}
	if opts.help {
		printUsage(stdout)
		return 0
	}

	env := d.env
	if env == nil {
		if env, err = config.LoadEnv(""); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}
	settings, err := config.LoadSettings(env)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	container, err := di.NewContainer(ctx, di.Config{
		Settings: *settings,
		Env:      env,
		Headless: !opts.nonHeadless,
		Site:     d.site,
		Stdout:   stdout,
		Stderr:   stderr,
		NewPage:  d.newPage,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer container.Close()

	container.Logger.Info("Punch started", "action", opts.action.String(), "headless", !opts.nonHeadless)

	result, err := container.Puncher.Execute(ctx, opts.action)
	if err != nil {
		container.UI.ShowError(ctx, err)
		return 1
	}

	container.Logger.Info("Punch completed", "action", result.Action.String(), "url", result.FinalURL)
	container.UI.ShowSuccess(ctx, fmt.Sprintf("%s done", result.Action))
	return 0
}
