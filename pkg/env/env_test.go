package env

import "testing"

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("LIBRERIA_TEST_VALUE", "   ")
	if got := Get("LIBRERIA_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv("LIBRERIA_TEST_VALUE", "console")
	if got := Get("LIBRERIA_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected console, got %q", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("LIBRERIA_TEST_FLAG", "true")
	if !Bool("LIBRERIA_TEST_FLAG", false) {
		t.Fatal("expected true")
	}

	t.Setenv("LIBRERIA_TEST_FLAG", "nope")
	if Bool("LIBRERIA_TEST_FLAG", false) {
		t.Fatal("unparsable value should use the fallback")
	}
}
