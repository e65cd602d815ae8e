package config

import (
	"testing"
	"time"
)

func TestPrefixComposition(t *testing.T) {
	t.Setenv("CORE_API_PORT", "4000")

	root := New()
	api := root.Prefix("CORE_").Prefix("API_")

	if got := api.MayString("PORT", ""); got != "4000" {
		t.Fatalf("nested prefix lookup = %q, want 4000", got)
	}
}

func TestMayHelpers(t *testing.T) {
	t.Setenv("T_INT", "12")
	t.Setenv("T_INT_BAD", "twelve")
	t.Setenv("T_BOOL", "true")
	t.Setenv("T_DUR", "250ms")
	t.Setenv("T_CSV", "a, b ,,c")

	c := New().Prefix("T_")

	if got := c.MayInt("INT", 0); got != 12 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("INT_BAD", 9); got != 9 {
		t.Fatalf("MayInt invalid = %d, want default", got)
	}
	if !c.MayBool("BOOL", false) {
		t.Fatalf("MayBool should be true")
	}
	if got := c.MayDuration("DUR", 0); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	csv := c.MayCSV("CSV", nil)
	if len(csv) != 3 || csv[0] != "a" || csv[1] != "b" || csv[2] != "c" {
		t.Fatalf("MayCSV = %v", csv)
	}
	if got := c.MayString("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("MayString missing = %q", got)
	}
}
