package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stylename/internal/buildpipeline"
	"stylename/internal/diag"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file|directory>",
		Short: "Report styleName diagnostics without writing output",
		Long:  `Parse and rewrite the given file or directory in memory and print every diagnostic`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDiagnose,
	}
	f := cmd.Flags()
	f.String("format", "", "output format (pretty|json|warnings)")
	f.Bool("no-warnings", false, "ignore warnings in diagnostics")
	f.String("min-severity", "info", "lowest severity to print (info|warning|error)")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	f.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	f.Bool("with-notes", false, "include diagnostic notes and fixes in output")
	f.Bool("fullpath", false, "emit absolute file paths in output")
	f.String("paths", "auto", "path display (auto|absolute|relative|basename)")
	f.String("attribute", "", "attribute to fold (default styleName)")
	f.String("target", "", "attribute receiving the result (default className)")
	return cmd
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	ctx := contextOf(cmd)
	f := cmd.Flags()

	noWarnings, _ := f.GetBool("no-warnings")
	warningsAsErrors, _ := f.GetBool("warnings-as-errors")
	if noWarnings && warningsAsErrors {
		return errors.New("no-warnings and warnings-as-errors flags cannot be used together")
	}

	minName, _ := f.GetString("min-severity")
	minSev, ok := diag.ParseSeverity(minName)
	if !ok {
		return fmt.Errorf("unknown severity %q (expected info|warning|error)", minName)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cfg)
	if err != nil {
		return err
	}
	if opts.MaxDiagnostics, err = maxDiagnostics(cmd, cfg); err != nil {
		return err
	}
	if err := transformFlags(cmd, &opts); err != nil {
		return err
	}
	opts.Write = false

	res, err := buildpipeline.Run(ctx, &buildpipeline.Request{TargetPath: args[0], BaseDir: opts.BaseDir, Options: opts})
	if err != nil {
		return err
	}
	bag := res.Bag()
	if noWarnings {
		bag.DropWarnings()
	}
	bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= minSev })

	format, _ := f.GetString("format")
	if format == "" {
		format = cfg.Diagnostics.Format
	}
	printer, err := newDiagPrinter(cmd, cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}
	if err := printer.print(cmd.OutOrStdout(), bag, res.FileSet); err != nil {
		return err
	}
	if showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings"); showTimings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if hasErrors(bag) || res.Failed() > 0 {
		dumpTrace(ctx, cmd.ErrOrStderr())
		return errReported
	}
	return nil
}

func hasErrors(bag *diag.Bag) bool {
	return bag != nil && bag.HasErrors()
}
