package parser

import (
	"bytes"
	"testing"
)

func TestProcessStringEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want []byte
	}{
		{`hello`, []byte("hello")},
		{`a\nb`, []byte("a\nb")},
		{`a\tb`, []byte("a\tb")},
		{`a\rb`, []byte("a\rb")},
		{`a\0b`, []byte{'a', 0, 'b'}},
		{`a\\b`, []byte(`a\b`)},
		{`a\"b`, []byte(`a"b`)},
		{`a\x41b`, []byte("aAb")},
	}
	for _, c := range cases {
		got, err := ProcessStringEscapes(c.in)
		if err != nil {
			t.Fatalf("ProcessStringEscapes(%q) failed: %v", c.in, err)
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("ProcessStringEscapes(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestProcessStringEscapesUnknown(t *testing.T) {
	if _, err := ProcessStringEscapes(`a\qb`); err == nil {
		t.Error("expected error for unknown escape")
	}
}

func TestProcessStringEscapesDangling(t *testing.T) {
	if _, err := ProcessStringEscapes(`a\`); err == nil {
		t.Error("expected error for dangling escape")
	}
}

func TestProcessCharEscapes(t *testing.T) {
	got, err := ProcessCharEscapes(`\n`)
	if err != nil || len(got) != 1 || got[0] != '\n' {
		t.Errorf("got %v, err %v", got, err)
	}
	got, err = ProcessCharEscapes(`\'`)
	if err != nil || len(got) != 1 || got[0] != '\'' {
		t.Errorf("got %v, err %v", got, err)
	}
}

func TestProcessCharEscapesRejectsHex(t *testing.T) {
	if _, err := ProcessCharEscapes(`\x41`); err == nil {
		t.Error("expected char-literal escapes to reject \\x")
	}
}
