// Package main implements an MCP server exposing dirstats traversals as
// structured tool results.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taigrr/dirstats/internal/config"
	"github.com/taigrr/dirstats/internal/filesystem"
	"github.com/taigrr/dirstats/internal/logger"
	"github.com/taigrr/dirstats/internal/types"
	"github.com/taigrr/dirstats/internal/version"
)

var (
	fileSystem *filesystem.Service
	scanConfig types.Config
	log        = logger.Nop()
)

func main() {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "dirstats-mcp [workspace]",
		Short: "MCP server for per-directory source statistics",
		Long: `dirstats-mcp is a Model Context Protocol (MCP) server that lets any
MCP-compatible harness scan directories inside a workspace and read
per-directory size and public/private/try/catch counts as structured
data. Paths outside the workspace are rejected.`,
		Example: `dirstats-mcp ~/src/project`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, v, cfgFile, args)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default ./dirstats.yaml or $HOME/.config/dirstats.yaml)")
	cobra.CheckErr(config.BindFlags(v, cmd.Flags()))

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version.Get()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, v *viper.Viper, cfgFile string, args []string) error {
	var workspace string
	if len(args) > 0 {
		workspace = args[0]
	} else {
		var err error
		workspace, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	// stdout carries the protocol, so logs go to stderr.
	setup(afero.NewOsFs(), workspace, cfg, logger.New(cfg.LogLevel, os.Stderr))
	log.Info().Str("workspace", fileSystem.BasePath()).Msg("starting MCP server")

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dirstats-mcp",
		Version: version.Get(),
	}, nil)

	registerTools(server)

	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}

// setup initializes the services used by the tool handlers.
func setup(fsys afero.Fs, workspace string, cfg types.Config, l zerolog.Logger) {
	fileSystem = filesystem.New(fsys, workspace)
	scanConfig = cfg
	log = l
}
