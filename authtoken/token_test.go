package authtoken

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromHexRoundTrip(t *testing.T) {
	tok, err := FromHex("deadbeef")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if tok.String() != "deadbeef" {
		t.Errorf("String() = %q, want %q", tok.String(), "deadbeef")
	}
}

func TestFromHexTrimsWhitespace(t *testing.T) {
	tok, err := FromHex("  deadbeef\n")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if tok.String() != "deadbeef" {
		t.Errorf("String() = %q, want %q", tok.String(), "deadbeef")
	}
}

func TestFromHexRejectsEmpty(t *testing.T) {
	if _, err := FromHex("   "); err != ErrEmpty {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestFromHexRejectsInvalid(t *testing.T) {
	if _, err := FromHex("not-hex"); err != ErrInvalidHex {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("cafef00d\n"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tok, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if tok.String() != "cafef00d" {
		t.Errorf("String() = %q, want %q", tok.String(), "cafef00d")
	}
}

func TestFromEnvDirect(t *testing.T) {
	t.Setenv("TEST_AUTH_TOKEN", "abc123")
	tok, err := FromEnv("TEST_AUTH_TOKEN")
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if tok.String() != "abc123" {
		t.Errorf("String() = %q, want %q", tok.String(), "abc123")
	}
}

func TestFromEnvFileFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("beefcafe"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("TEST_AUTH_TOKEN_FILE", path)
	tok, err := FromEnv("TEST_AUTH_TOKEN")
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if tok.String() != "beefcafe" {
		t.Errorf("String() = %q, want %q", tok.String(), "beefcafe")
	}
}

func TestFromEnvNotFound(t *testing.T) {
	if _, err := FromEnv("TEST_AUTH_TOKEN_DOES_NOT_EXIST"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
