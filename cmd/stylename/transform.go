package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylename/internal/buildpipeline"
	"stylename/internal/driver"
)

func newTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform [flags] <file|directory>",
		Short: "Rewrite styleName into className",
		Long: `Rewrite every styleName attribute of the given file, or of every matching file
under the given directory, and write the results. A single file is printed to
stdout with --stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: runTransform,
	}
	f := cmd.Flags()
	f.String("out", "", "output directory mirroring the inputs (overrides [output].dir)")
	f.String("suffix", "", "output name suffix, app.jsx -> app<suffix>.jsx (overrides [output].suffix)")
	f.Bool("stdout", false, "print the result of a single file instead of writing it")
	f.Int("jobs", 0, "max parallel workers for directories (0=auto)")
	f.Bool("cache", false, "reuse results of unchanged files from the disk cache")
	f.String("ui", "auto", "progress UI for directories (auto|on|off)")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	f.Bool("omit-helper", false, "do not emit the helper declaration (the runtime installs it)")
	f.String("attribute", "", "attribute to fold (default styleName)")
	f.String("target", "", "attribute receiving the result (default className)")
	f.String("format", "", "diagnostics format (pretty|json|warnings)")
	f.Bool("with-notes", false, "include notes and fix suggestions in diagnostics")
	f.Bool("fullpath", false, "emit absolute file paths in diagnostics")
	f.String("paths", "auto", "path display in diagnostics (auto|absolute|relative|basename)")
	return cmd
}

// transformFlags applies command flags over the manifest options.
func transformFlags(cmd *cobra.Command, opts *driver.Options) error {
	f := cmd.Flags()
	var err error
	if f.Changed("out") {
		var out string
		if out, err = f.GetString("out"); err != nil {
			return err
		}
		if opts.OutDir, err = filepath.Abs(out); err != nil {
			return err
		}
	}
	if f.Changed("suffix") {
		if opts.Suffix, err = f.GetString("suffix"); err != nil {
			return err
		}
		if !f.Changed("out") {
			opts.OutDir = ""
		}
	}
	if opts.Jobs, err = f.GetInt("jobs"); err != nil {
		return err
	}
	if f.Changed("warnings-as-errors") {
		if opts.WarningsAsErrors, err = f.GetBool("warnings-as-errors"); err != nil {
			return err
		}
	}
	if f.Changed("omit-helper") {
		if opts.OmitHelper, err = f.GetBool("omit-helper"); err != nil {
			return err
		}
	}
	if f.Changed("attribute") {
		if opts.Transform.Attribute, err = f.GetString("attribute"); err != nil {
			return err
		}
	}
	if f.Changed("target") {
		if opts.Transform.Target, err = f.GetString("target"); err != nil {
			return err
		}
	}
	if opts.Transform.Attribute == opts.Transform.Target {
		return fmt.Errorf("attribute and target are both %q", opts.Transform.Attribute)
	}
	if opts.EnableTimings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return err
	}
	return nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx := contextOf(cmd)

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

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if toStdout && info.IsDir() {
		return errors.New("--stdout needs a single file")
	}
	opts.Write = !toStdout

	useCache := cfg.Output.Cache
	if cmd.Flags().Changed("cache") {
		useCache, _ = cmd.Flags().GetBool("cache")
	}
	if useCache {
		cache, err := driver.OpenDiskCache("stylename")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	uiValue, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	req := &buildpipeline.Request{TargetPath: target, BaseDir: opts.BaseDir, Options: opts}
	var res buildpipeline.Result
	var runErr error
	if info.IsDir() && !quiet && shouldUseTUI(mode, cmd.OutOrStdout()) {
		files, err := buildpipeline.ProgressFiles(target, req.BaseDir, &req.Options)
		if err != nil {
			return err
		}
		res, runErr = runWithUI(ctx, cmd.OutOrStdout(), "stylename transform "+target, files, req)
	} else {
		res, runErr = buildpipeline.Run(ctx, req)
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Diagnostics.Format
	}
	printer, err := newDiagPrinter(cmd, cmd.ErrOrStderr(), format)
	if err != nil {
		return err
	}
	if err := printer.print(cmd.ErrOrStderr(), res.Bag(), res.FileSet); err != nil {
		return err
	}

	if toStdout && len(res.Files) == 1 && !res.Files[0].Failed() {
		if _, err := cmd.OutOrStdout().Write(res.Files[0].Text); err != nil {
			return err
		}
	}
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	if showTimings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
		if res.Report != nil {
			fmt.Fprint(cmd.ErrOrStderr(), res.Report.Summary())
		}
	}
	if !quiet && !toStdout {
		printSummary(cmd.ErrOrStderr(), &res)
	}

	if runErr != nil {
		dumpTrace(ctx, cmd.ErrOrStderr())
		return runErr
	}
	if res.Failed() > 0 {
		dumpTrace(ctx, cmd.ErrOrStderr())
		return errReported
	}
	return nil
}
