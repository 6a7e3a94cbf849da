// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

// The skillz-server binary discovers skill bundles under a root directory
// and serves them as MCP tools and resources over stdio.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/skillz-mcp/skillz/env"
	"github.com/skillz-mcp/skillz/logger"
	"github.com/skillz-mcp/skillz/logging"
	"github.com/skillz-mcp/skillz/mcpserver"
	"github.com/skillz-mcp/skillz/registry"
	"github.com/skillz-mcp/skillz/resources"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	skillsDir string
	debug     bool
	jsonLogs  bool
)

var rootCmd = &cobra.Command{
	Use:   "skillz-server",
	Short: "Serve skill bundles over MCP stdio",
	Long: `skillz-server scans a directory for skill bundles (directories or
.zip/.tar.gz archives carrying a SKILL.md document) and exposes each one as
an MCP tool, with its auxiliary files available as MCP resources.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

type debugFlag struct{}

func (*debugFlag) IsDebug() bool { return debug }

func init() {
	rootCmd.PersistentFlags().StringVar(&skillsDir, "skills-dir",
		filepath.Join(xdg.DataHome, "skillz", "skills"),
		"Directory scanned for skill bundles")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false,
		"Force structured JSON log output")
}

func run(_ *cobra.Command, _ []string) error {
	envReader := env.Reader(&env.OSReader{})
	if jsonLogs {
		envReader = env.MapReader{"UNSTRUCTURED_LOGS": "false"}
	}
	logger.InitializeWithOptions(envReader, &debugFlag{})

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	format := logging.FormatText
	if jsonLogs {
		format = logging.FormatJSON
	}
	log := logging.New(logging.WithLevel(level), logging.WithFormat(format))

	reg := registry.New(log)
	if err := reg.Load(skillsDir); err != nil {
		return err
	}
	res := resources.NewResolver(reg, log)

	logger.Infof("serving %d skills over stdio", reg.Len())
	return mcpserver.ServeStdio(mcpserver.New(reg, res, version))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("skillz-server: %v", err)
		os.Exit(1)
	}
}
