package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harborcrew/quarterdeck/internal/tools"
)

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	reg := tools.NewRegistry()
	reg.MustRegister(tools.Tool{
		Name:        "ping",
		Description: "Answers with pong.",
		Handler: func(context.Context, tools.Args) (any, error) {
			return map[string]string{"message": "pong"}, nil
		},
	})
	return reg
}

func TestHandlerWrapsEnvelope(t *testing.T) {
	s := New(testRegistry(t))
	handle := s.handler("ping")

	result, _, err := handle(context.Background(), nil, map[string]any{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T", result.Content[0])
	}
	var envelope map[string]any
	if err := json.Unmarshal([]byte(text.Text), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope["status"] != "success" {
		t.Errorf("status = %v", envelope["status"])
	}
}

func TestHandlerFlagsErrors(t *testing.T) {
	s := New(testRegistry(t))
	handle := s.handler("not_registered")

	result, _, err := handle(context.Background(), nil, map[string]any{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for unknown tool")
	}
	text := result.Content[0].(*mcp.TextContent)
	if !strings.Contains(text.Text, "error") {
		t.Errorf("envelope = %s", text.Text)
	}
}

func TestSchemaForKnownAndUnknownTools(t *testing.T) {
	schema := schemaFor("write_task")
	required, ok := schema["required"].([]string)
	if !ok || len(required) != 5 {
		t.Errorf("write_task required = %v", schema["required"])
	}

	open := schemaFor("some_plugin_tool")
	if open["type"] != "object" {
		t.Errorf("fallback schema = %v", open)
	}
	if _, hasProps := open["properties"]; hasProps {
		t.Error("fallback schema should not constrain properties")
	}
}
