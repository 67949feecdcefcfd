package mcp

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func requestWith(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestRequiredInt(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    int
		wantErr string
	}{
		{"integral value", map[string]any{"light_id": float64(3)}, 3, ""},
		{"zero", map[string]any{"light_id": float64(0)}, 0, ""},
		{"missing", map[string]any{}, 0, "is missing"},
		{"null", map[string]any{"light_id": nil}, 0, "is missing"},
		{"string", map[string]any{"light_id": "3"}, 0, "whole number"},
		{"fractional", map[string]any{"light_id": 200.9}, 0, "whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := requiredInt(requestWith(tt.args), "light_id")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOptionalInt(t *testing.T) {
	if _, ok, err := optionalInt(requestWith(map[string]any{}), "brightness"); ok || err != nil {
		t.Errorf("absent key should be (0, false, nil), got ok=%v err=%v", ok, err)
	}

	v, ok, err := optionalInt(requestWith(map[string]any{"brightness": float64(128)}), "brightness")
	if err != nil || !ok || v != 128 {
		t.Errorf("got (%d, %v, %v), want (128, true, nil)", v, ok, err)
	}

	if _, _, err := optionalInt(requestWith(map[string]any{"brightness": 200.9}), "brightness"); err == nil {
		t.Error("fractional values should be rejected, not truncated")
	}
}

func TestRequiredIntList(t *testing.T) {
	ids, err := requiredIntList(requestWith(map[string]any{"light_ids": []any{float64(1), float64(4)}}), "light_ids")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 4 {
		t.Errorf("got %v, want [1 4]", ids)
	}

	if _, err := requiredIntList(requestWith(map[string]any{"light_ids": []any{float64(1), 2.5}}), "light_ids"); err == nil {
		t.Error("a fractional element should fail the whole list")
	}
	if _, err := requiredIntList(requestWith(map[string]any{"light_ids": []any{}}), "light_ids"); err == nil {
		t.Error("an empty list should be rejected")
	}
}
