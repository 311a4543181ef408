package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stylename/internal/version"
)

// errReported: the command already printed its failure (diagnostics), only
// the exit status is left.
var errReported = errors.New("failed")

// newRootCmd builds the command tree with fresh flag state. finish closes
// the tracer opened by the pre-run hook; it runs on failed commands too.
func newRootCmd() (root *cobra.Command, finish func()) {
	var cleanup func()
	root = &cobra.Command{
		Use:           "stylename",
		Short:         "Rewrite styleName attributes into className",
		Long:          `stylename folds the styleName attribute of JSX elements into className through the checkAndJoinStyleName runtime helper`,
		Version:       version.Current().Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColor(cmd); err != nil {
				return err
			}
			c, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanup = c
			return nil
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = from config)")
	pf.String("config", "", "path to stylename.toml (default: search upwards)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval (0 = off)")

	root.AddCommand(
		newTransformCmd(),
		newDiagCmd(),
		newFixCmd(),
		newParseCmd(),
		newTokenizeCmd(),
		newHelperCmd(),
		newJoinCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return root, func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}
}

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func execute(args []string, stdout, stderr io.Writer) error {
	root, finish := newRootCmd()
	defer finish()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "stylename: %v\n", err)
	}
	return err
}

func applyColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// useColor reports whether output to w gets ANSI colors.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
