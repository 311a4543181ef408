package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylename/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + project.ManifestName,
		Long: `Create ` + project.ManifestName + ` with the default settings in [path], or in
the current directory. A missing directory is created. An existing manifest is
never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// вложенный манифест перекроет родительский для всего поддерева
	outer, nested, err := project.FindProjectRoot(filepath.Dir(target))
	if err != nil {
		return err
	}

	path, err := project.WriteDefault(target)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("already initialized: %s exists", filepath.Join(target, project.ManifestName))
		}
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := path
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, path); err == nil {
			rel = r
		}
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", rel)
		if nested {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: shadows %s\n", filepath.Join(outer, project.ManifestName))
		}
	}
	return nil
}
