package scoreboard

import (
	"errors"
	"testing"
)

func TestNewFilter_Conflict(t *testing.T) {
	_, err := NewFilter([]string{"a"}, []string{"b"}, false)
	if !errors.Is(err, ErrFilterConflict) {
		t.Fatalf("error = %v, want ErrFilterConflict", err)
	}
}

func TestFilter_Admit(t *testing.T) {
	allowOnly, err := NewFilter([]string{"Alice", "Bob"}, nil, false)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	allowDots, err := NewFilter([]string{"Alice"}, nil, true)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	deny, err := NewFilter(nil, []string{"$sidebar_store", ".BedrockGrief"}, true)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	empty, err := NewFilter(nil, nil, false)
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}

	tests := []struct {
		name   string
		filter *Filter
		player string
		want   bool
	}{
		{"nil admits all", nil, "anyone", true},
		{"empty admits all", empty, "anyone", true},
		{"allow listed", allowOnly, "Alice", true},
		{"allow unlisted", allowOnly, "$datapack_value", false},
		{"allow dot name without flag", allowOnly, ".Steve", false},
		{"allow dot name with flag", allowDots, ".Steve", true},
		{"allow unlisted with flag", allowDots, "Mallory", false},
		{"deny listed", deny, "$sidebar_store", false},
		{"deny listed dot name", deny, ".BedrockGrief", false},
		{"deny unlisted", deny, "Alice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Admit(tt.player); got != tt.want {
				t.Errorf("Admit(%q) = %v, want %v", tt.player, got, tt.want)
			}
		})
	}
}

func TestParseWhitelist(t *testing.T) {
	data := []byte(`[
		{"uuid": "5f9c3b2a-0d1e-4f00-9a8b-7c6d5e4f3a2b", "name": "Alice"},
		{"uuid": "00000000-0000-0000-0009-01f64f65c7b2", "name": "unknown"},
		{"uuid": "1a2b3c4d-5e6f-4a4b-8c9d-0e1f2a3b4c5d", "name": "Bob"}
	]`)
	names, err := ParseWhitelist(data)
	if err != nil {
		t.Fatalf("ParseWhitelist failed: %v", err)
	}
	if len(names) != 2 || names[0] != "Alice" || names[1] != "Bob" {
		t.Errorf("names = %v, want [Alice Bob]", names)
	}
}

func TestParseWhitelist_Invalid(t *testing.T) {
	if _, err := ParseWhitelist([]byte(`{"not": "a list"}`)); err == nil {
		t.Error("ParseWhitelist should fail on a non-array document")
	}
}
