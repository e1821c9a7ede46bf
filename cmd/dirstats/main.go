// Package main implements the dirstats command-line report.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taigrr/dirstats/internal/aggregator"
	"github.com/taigrr/dirstats/internal/config"
	"github.com/taigrr/dirstats/internal/logger"
	"github.com/taigrr/dirstats/internal/pathfilter"
	"github.com/taigrr/dirstats/internal/report"
	"github.com/taigrr/dirstats/internal/version"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(afero.NewOsFs()),
		fang.WithVersion(version.Get()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "dirstats <directory>",
		Short: "Per-directory size and keyword statistics for source trees",
		Long: `dirstats walks a directory tree and reports, for every directory,
the total size of matching source files anywhere beneath it and how
often the public, private, try and catch markers occur in them.
Comments and string literals are stripped before counting.`,
		Example: `dirstats ./src
dirstats --ext .kt --format json ./app`,
		Args: exactlyOneDirectory,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, fsys, v, cfgFile, args[0])
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default ./dirstats.yaml or $HOME/.config/dirstats.yaml)")
	cobra.CheckErr(config.BindFlags(v, cmd.Flags()))
	cobra.CheckErr(config.BindOutputFlags(v, cmd.Flags()))

	return cmd
}

func exactlyOneDirectory(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <directory> (expected 1 argument, got %d)", cmd.Name(), len(args))
	}
	return nil
}

func runReport(cmd *cobra.Command, fsys afero.Fs, v *viper.Viper, cfgFile, root string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cmd.ErrOrStderr())
	svc := aggregator.New(
		fsys,
		pathfilter.New(&cfg.Filter),
		aggregator.WithLogger(log),
		aggregator.WithGitignore(cfg.Gitignore),
	)

	result, err := svc.Traverse(root)
	if err != nil {
		return err
	}

	// Render fully before writing so a failure leaves no partial report.
	var buf bytes.Buffer
	if err := report.Write(&buf, result, format); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
