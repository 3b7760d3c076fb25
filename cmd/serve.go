package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/uitrack/uitrack/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the tracking registry",
	Long: `Start a Model Context Protocol (MCP) server that exposes the element
registry and navigation tools. UI layers push notify_* events in; agents
query elements, wait for them, and dispatch tap/type/swipe intents.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  uitrack serve
  uitrack serve --transport streamable-http --port 8080
  uitrack serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config)")
	serveCmd.Flags().Int("cache-ttl", -1, "Pattern-match cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	srvCfg := server.Config{
		Transport:    cfg.Server.Transport,
		Port:         cfg.Server.Port,
		CacheTTL:     cfg.Server.CacheTTL,
		PollInterval: cfg.Wait.PollInterval,
		Registry:     cfg.NewRegistry(),
	}
	if transport, _ := cmd.Flags().GetString("transport"); transport != "" {
		srvCfg.Transport = transport
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		srvCfg.Port = port
	}
	if ttlMs, _ := cmd.Flags().GetInt("cache-ttl"); ttlMs >= 0 {
		srvCfg.CacheTTL = time.Duration(ttlMs) * time.Millisecond
	}

	return server.New(srvCfg).Serve(srvCfg)
}
