package service_test

import (
	"encoding/json"
	"testing"

	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"color":null}`, wantSet: true},
		{name: "value", body: `{"color":"#fff"}`, wantSet: true, wantValue: strPtr("#fff")},
		{name: "empty string", body: `{"color":""}`, wantSet: true, wantValue: strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				Color service.Optional[string] `json:"color"`
			}
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Color.Set != tt.wantSet {
				t.Errorf("Set: got %v, want %v", req.Color.Set, tt.wantSet)
			}
			switch {
			case tt.wantValue == nil && req.Color.Value != nil:
				t.Errorf("Value: got %q, want nil", *req.Color.Value)
			case tt.wantValue != nil && (req.Color.Value == nil || *req.Color.Value != *tt.wantValue):
				t.Errorf("Value: got %v, want %q", req.Color.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptional_RejectsWrongType(t *testing.T) {
	var req struct {
		Tags service.Optional[[]string] `json:"tag_ids"`
	}
	if err := json.Unmarshal([]byte(`{"tag_ids":"a"}`), &req); err == nil {
		t.Error("expected type error")
	}
}
