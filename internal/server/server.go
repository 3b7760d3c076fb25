// Package server exposes the tracking registry and navigation façade as MCP
// tools. UI layers push notify_* events in; automation agents query, wait,
// and dispatch interactions over the same connection.
package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/uitrack/uitrack/internal/nav"
	"github.com/uitrack/uitrack/internal/query"
	"github.com/uitrack/uitrack/internal/track"
	"github.com/uitrack/uitrack/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport    string
	Port         int
	CacheTTL     time.Duration
	PollInterval time.Duration
	Registry     *track.Registry // nil = default registry
}

// Server wraps the MCP server with the registry, façade, and query cache.
type Server struct {
	registry *track.Registry
	nav      *nav.Navigator
	queries  *query.Engine
	cache    *matchCache
	journal  *actionJournal
	mcp      *mcpserver.MCPServer
}

// New creates and configures an MCP server with all uitrack tools. The
// dispatched-action journal doubles as the automation callback sink: agents
// poll the actions tool to pick up tap/type/swipe intents.
func New(cfg Config) *Server {
	reg := cfg.Registry
	if reg == nil {
		reg = track.NewDefaultRegistry()
	}
	journal := newActionJournal(defaultJournalSize)

	s := &Server{
		registry: reg,
		cache:    newMatchCache(cfg.CacheTTL),
		journal:  journal,
	}
	s.nav = nav.New(reg,
		nav.WithHooks(journal.Hooks()),
		nav.WithLogger(nav.NewSlogLogger(slog.Default())),
		nav.WithPollInterval(cfg.PollInterval),
	)
	s.queries = s.nav.Queries()

	s.mcp = mcpserver.NewMCPServer("uitrack", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// UI-layer boundary: element lifecycle events
	s.mcp.AddTool(
		mcp.NewTool("notify_appeared",
			mcp.WithDescription("Register a UI element that became visible, with its screen frame and metadata"),
			mcp.WithString("identifier", mcp.Required(), mcp.Description("Element identifier (letters, digits, underscore, hyphen, period)")),
			mcp.WithNumber("x", mcp.Description("Frame origin X in points")),
			mcp.WithNumber("y", mcp.Description("Frame origin Y in points")),
			mcp.WithNumber("width", mcp.Description("Frame width in points")),
			mcp.WithNumber("height", mcp.Description("Frame height in points")),
			mcp.WithString("context", mcp.Description("Element metadata as a JSON object of string key/value pairs")),
			mcp.WithBoolean("unchecked", mcp.Description("Use the legacy best-effort path that stores despite validation failures")),
		),
		s.handleNotifyAppeared,
	)

	s.mcp.AddTool(
		mcp.NewTool("notify_moved",
			mcp.WithDescription("Update an element's frame after a layout pass, keeping its metadata"),
			mcp.WithString("identifier", mcp.Required(), mcp.Description("Element identifier")),
			mcp.WithNumber("x", mcp.Description("Frame origin X in points")),
			mcp.WithNumber("y", mcp.Description("Frame origin Y in points")),
			mcp.WithNumber("width", mcp.Description("Frame width in points")),
			mcp.WithNumber("height", mcp.Description("Frame height in points")),
		),
		s.handleNotifyMoved,
	)

	s.mcp.AddTool(
		mcp.NewTool("notify_disappeared",
			mcp.WithDescription("Remove an element that is no longer visible (no-op if untracked)"),
			mcp.WithString("identifier", mcp.Required(), mcp.Description("Element identifier")),
		),
		s.handleNotifyDisappeared,
	)

	// View context
	s.mcp.AddTool(
		mcp.NewTool("set_context",
			mcp.WithDescription("Replace the current screen name and metadata"),
			mcp.WithString("name", mcp.Description("Screen name")),
			mcp.WithString("metadata", mcp.Description("Screen metadata as a JSON object of string key/value pairs")),
		),
		s.handleSetContext,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_context",
			mcp.WithDescription("Return the current screen name and metadata"),
		),
		s.handleGetContext,
	)

	// Automation façade
	s.mcp.AddTool(
		mcp.NewTool("tap",
			mcp.WithDescription("Tap a tracked element at its center point"),
			mcp.WithString("identifier", mcp.Required(), mcp.Description("Element identifier")),
		),
		s.handleTap,
	)

	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Type text into a tracked element"),
			mcp.WithString("identifier", mcp.Required(), mcp.Description("Element identifier")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to type")),
		),
		s.handleType,
	)

	s.mcp.AddTool(
		mcp.NewTool("swipe",
			mcp.WithDescription("Swipe between two screen points (coordinate-based, no element lookup)"),
			mcp.WithNumber("from_x", mcp.Required(), mcp.Description("Start X")),
			mcp.WithNumber("from_y", mcp.Required(), mcp.Description("Start Y")),
			mcp.WithNumber("to_x", mcp.Required(), mcp.Description("End X")),
			mcp.WithNumber("to_y", mcp.Required(), mcp.Description("End Y")),
		),
		s.handleSwipe,
	)

	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait for an element to appear, polling until found or timeout"),
			mcp.WithString("identifier", mcp.Required(), mcp.Description("Element identifier")),
			mcp.WithNumber("timeout", mcp.Description("Max milliseconds to wait (default: 5000)")),
		),
		s.handleWait,
	)

	// Queries
	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Find identifiers matching a case-insensitive regular expression"),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Regular expression (search semantics)")),
		),
		s.handleFind,
	)

	s.mcp.AddTool(
		mcp.NewTool("elements",
			mcp.WithDescription("List all tracked elements"),
		),
		s.handleElements,
	)

	s.mcp.AddTool(
		mcp.NewTool("in_region",
			mcp.WithDescription("List elements whose frame overlaps a screen region with positive area"),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("Region origin X")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Region origin Y")),
			mcp.WithNumber("width", mcp.Required(), mcp.Description("Region width")),
			mcp.WithNumber("height", mcp.Required(), mcp.Description("Region height")),
		),
		s.handleInRegion,
	)

	// Diagnostics
	s.mcp.AddTool(
		mcp.NewTool("snapshot",
			mcp.WithDescription("Capture an atomic snapshot of all elements plus the view context"),
			mcp.WithString("save", mcp.Description("Also write the snapshot as JSON to this path")),
		),
		s.handleSnapshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("diff",
			mcp.WithDescription("Diff a previously saved snapshot against the current registry state"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path of a snapshot written by the snapshot tool")),
		),
		s.handleDiff,
	)

	s.mcp.AddTool(
		mcp.NewTool("overlay",
			mcp.WithDescription("Render tracked element frames as a PNG image for visual inspection"),
			mcp.WithBoolean("labels", mcp.Description("Draw identifier labels (default: true)")),
			mcp.WithNumber("scale", mcp.Description("Points-to-pixels scale (default: 1.0)")),
		),
		s.handleOverlay,
	)

	s.mcp.AddTool(
		mcp.NewTool("actions",
			mcp.WithDescription("Drain dispatched tap/type/swipe intents for the external input driver"),
		),
		s.handleActions,
	)

	s.mcp.AddTool(
		mcp.NewTool("clear",
			mcp.WithDescription("Remove all elements and reset the view context"),
		),
		s.handleClear,
	)
}
