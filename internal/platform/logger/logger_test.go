package logger

import (
	"context"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"DEBUG", "debug"},
		{" info ", "info"},
		{"warning", "warn"},
		{"error", "error"},
		{"bogus", "debug"},
		{"", "debug"},
	}
	for _, tc := range tests {
		if got := parseLevel(tc.in).String(); got != tc.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetAndNamed(t *testing.T) {
	l := Get()
	if l == nil {
		t.Fatalf("Get returned nil")
	}
	if Named("") != l {
		t.Fatalf("Named with empty component should return root")
	}
	if Named("core") == nil {
		t.Fatalf("Named returned nil")
	}
}

func TestCUsesRequestID(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1")
	if C(ctx) == nil {
		t.Fatalf("C returned nil")
	}
	// empty id leaves ctx untouched
	base := context.Background()
	if WithRequest(base, "") != base {
		t.Fatalf("empty request id should not annotate ctx")
	}
}
