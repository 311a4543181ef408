package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stylename/internal/driver"
	"stylename/internal/project"
	"stylename/internal/transform"
)

// loadConfig reads --config or searches stylename.toml upwards from the
// working directory.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.LoadConfig(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, err
	}
	return project.Discover(wd)
}

// maxDiagnostics prefers --max-diagnostics over [diagnostics].max.
func maxDiagnostics(cmd *cobra.Command, cfg project.Config) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if n > 0 {
		return n, nil
	}
	return cfg.Diagnostics.Max, nil
}

// driverOptions maps the manifest onto driver options. Command flags are
// applied by the caller.
func driverOptions(cfg project.Config) (driver.Options, error) {
	outDir, err := cfg.OutDir()
	if err != nil {
		return driver.Options{}, err
	}
	topts := transform.DefaultOptions()
	if cfg.Transform.Attribute != "" {
		topts.Attribute = cfg.Transform.Attribute
	}
	if cfg.Transform.Target != "" {
		topts.Target = cfg.Transform.Target
	}
	return driver.Options{
		Transform:        topts,
		OmitHelper:       !cfg.EmitsHelper(),
		MaxDiagnostics:   cfg.Diagnostics.Max,
		WarningsAsErrors: cfg.Diagnostics.WarningsAsErrors,
		BaseDir:          cfg.Root,
		OutDir:           outDir,
		Suffix:           cfg.Output.Suffix,
		Write:            true,
		Extensions:       cfg.Transform.Extensions,
		Exclude:          cfg.Transform.Exclude,
	}, nil
}
