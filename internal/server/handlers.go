package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/uitrack/uitrack/internal/overlay"
	"github.com/uitrack/uitrack/internal/track"
)

// resultToText serializes v to YAML for an MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

// parseStringMap decodes a JSON object of string pairs from a tool argument.
func parseStringMap(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	return m, nil
}

func frameFromParams(params map[string]interface{}) track.Frame {
	return track.Frame{
		X:      floatParam(params, "x", 0),
		Y:      floatParam(params, "y", 0),
		Width:  floatParam(params, "width", 0),
		Height: floatParam(params, "height", 0),
	}
}

type ackResult struct {
	OK         bool   `yaml:"ok"`
	Action     string `yaml:"action"`
	Identifier string `yaml:"identifier,omitempty"`
	Count      int    `yaml:"count,omitempty"`
}

func (s *Server) handleNotifyAppeared(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "identifier", "")
	frame := frameFromParams(params)
	ctx, err := parseStringMap(stringParam(params, "context", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if boolParam(params, "unchecked", false) {
		s.registry.UpsertUnchecked(id, frame, ctx)
	} else if err := s.registry.NotifyAppeared(id, frame, ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(resultToText(ackResult{OK: true, Action: "notify_appeared", Identifier: id})), nil
}

func (s *Server) handleNotifyMoved(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "identifier", "")
	if err := s.registry.NotifyMoved(id, frameFromParams(params)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(resultToText(ackResult{OK: true, Action: "notify_moved", Identifier: id})), nil
}

func (s *Server) handleNotifyDisappeared(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "identifier", "")
	s.registry.NotifyDisappeared(id)
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(resultToText(ackResult{OK: true, Action: "notify_disappeared", Identifier: id})), nil
}

func (s *Server) handleSetContext(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := stringParam(params, "name", "")
	metadata, err := parseStringMap(stringParam(params, "metadata", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.registry.SetContext(name, metadata); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(ackResult{OK: true, Action: "set_context"})), nil
}

func (s *Server) handleGetContext(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(resultToText(s.registry.Context())), nil
}

func (s *Server) handleTap(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "identifier", "")
	return mcp.NewToolResultText(resultToText(s.nav.TapElement(id))), nil
}

func (s *Server) handleType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "identifier", "")
	text := stringParam(params, "text", "")
	return mcp.NewToolResultText(resultToText(s.nav.TypeText(id, text))), nil
}

func (s *Server) handleSwipe(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	from := track.Point{X: floatParam(params, "from_x", 0), Y: floatParam(params, "from_y", 0)}
	to := track.Point{X: floatParam(params, "to_x", 0), Y: floatParam(params, "to_y", 0)}
	return mcp.NewToolResultText(resultToText(s.nav.Swipe(from, to))), nil
}

func (s *Server) handleWait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "identifier", "")
	timeoutMs := intParam(params, "timeout", 5000)
	result := s.nav.WaitForElement(ctx, id, time.Duration(timeoutMs)*time.Millisecond)
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	pattern := stringParam(params, "pattern", "")
	ids, err := s.cache.Matching(s.queries, pattern)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	type findResult struct {
		Pattern string   `yaml:"pattern"`
		Matches []string `yaml:"matches"`
	}
	return mcp.NewToolResultText(resultToText(findResult{Pattern: pattern, Matches: ids})), nil
}

func (s *Server) handleElements(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(resultToText(s.nav.AllElements())), nil
}

func (s *Server) handleInRegion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	region := frameFromParams(params)
	return mcp.NewToolResultText(resultToText(s.queries.InRegion(region))), nil
}

func (s *Server) handleSnapshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	snap := s.registry.Snapshot()
	if path := stringParam(params, "save", ""); path != "" {
		if err := track.SaveSnapshot(path, snap); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return mcp.NewToolResultText(resultToText(snap)), nil
}

func (s *Server) handleDiff(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	prev, err := track.LoadSnapshot(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	diff := track.DiffSnapshots(prev, s.registry.Snapshot())
	return mcp.NewToolResultText(resultToText(diff)), nil
}

func (s *Server) handleOverlay(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := overlay.Options{
		Labels: boolParam(params, "labels", true),
		Scale:  floatParam(params, "scale", 1.0),
	}
	var buf bytes.Buffer
	if err := overlay.WritePNG(&buf, s.nav.AllElements(), opts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
				MIMEType: "image/png",
			},
		},
	}, nil
}

func (s *Server) handleActions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type actionsResult struct {
		Actions []DispatchedAction `yaml:"actions"`
	}
	return mcp.NewToolResultText(resultToText(actionsResult{Actions: s.journal.Drain()})), nil
}

func (s *Server) handleClear(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count := s.registry.Len()
	s.registry.Clear()
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(resultToText(ackResult{OK: true, Action: "clear", Count: count})), nil
}
