package userinteraction

import (
	"context"
	"io"
	"os"

	"freee-timecard/internal/application/port/output"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

type ConsoleUserInteraction struct {
	out io.Writer
	err io.Writer
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return NewConsoleUserInteractionWithWriters(os.Stdout, os.Stderr)
}

func NewConsoleUserInteractionWithWriters(out, err io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{out: out, err: err}
}

func (u *ConsoleUserInteraction) ShowStage(ctx context.Context, stage, detail string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "→ %s", stage)
	if detail != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(u.out, " %s", detail)
	}
	u.out.Write([]byte("\n"))
}

func (u *ConsoleUserInteraction) ShowSuccess(ctx context.Context, message string) {
	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %s\n", message)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(u.err, "error: ")
	color.New(color.FgRed).Fprintln(u.err, err.Error())
}
