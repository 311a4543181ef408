package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"stylename/internal/buildpipeline"
	"stylename/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file|directory>",
		Short: "Apply available fixes to the sources",
		Long: `Run diagnostics and apply the suggested edits to the input files. A literal
styleName without a className next to it is renamed to className, so the
attribute needs no runtime helper.`,
		Args: cobra.ExactArgs(1),
		RunE: runFix,
	}
	cmd.Flags().Bool("all", false, "apply all fixes")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply fix with a specific identifier")
	cmd.Flags().Bool("dry-run", false, "print the new contents instead of writing them")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, _ := cmd.Flags().GetBool("all")
	applyOnce, _ := cmd.Flags().GetBool("once")
	targetID, _ := cmd.Flags().GetString("id")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// id уникален только внутри одного файла
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: id can only be used with a single file")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cfg)
	if err != nil {
		return err
	}
	opts.Write = false
	opts.MaxDiagnostics = 0

	res, err := buildpipeline.Run(contextOf(cmd), &buildpipeline.Request{TargetPath: targetPath, BaseDir: opts.BaseDir, Options: opts})
	if err != nil {
		return fmt.Errorf("fix: diagnose failed: %w", err)
	}
	bag := res.Bag()
	bag.Sort()

	applied, applyErr := fix.Apply(res.FileSet, bag.Items(), fix.ApplyOptions{Mode: mode, TargetID: targetID, DryRun: dryRun})
	if err := printApplyResult(cmd.OutOrStdout(), applied, dryRun); err != nil {
		return err
	}
	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(cmd.OutOrStdout(), "no fixes to apply")
		return nil
	}
	return applyErr
}

func printApplyResult(out io.Writer, res *fix.ApplyResult, dryRun bool) error {
	if res == nil {
		return nil
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(out, "  %s [%s]: %s (%d edits)\n", item.Title, item.ID, item.PrimaryPath, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		if dryRun {
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "--- %s (%d edits)\n", change.Path, change.EditCount)
				if _, err := out.Write(change.Content); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
		} else {
			fmt.Fprintln(out, "Updated files:")
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
			}
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
		}
	}
	return nil
}
