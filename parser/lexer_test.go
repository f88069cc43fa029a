package parser

import "testing"

func TestTokenizeLineEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "; just a comment"} {
		line, ok := TokenizeLine(raw)
		if !ok || !line.Empty {
			t.Errorf("TokenizeLine(%q): expected empty line, got %+v (ok=%v)", raw, line, ok)
		}
	}
}

func TestTokenizeLineLabelAndMnemonic(t *testing.T) {
	line, ok := TokenizeLine("LOOP: MOV A, B ; copy A from B")
	if !ok {
		t.Fatal("expected ok")
	}
	if line.Label != "LOOP" || line.Mnemonic != "MOV" || line.Operand != "A, B" {
		t.Errorf("got %+v", line)
	}
}

func TestTokenizeLineLocalLabel(t *testing.T) {
	line, ok := TokenizeLine(".retry: JMP .retry")
	if !ok {
		t.Fatal("expected ok")
	}
	if line.Label != ".retry" || line.Mnemonic != "JMP" || line.Operand != ".retry" {
		t.Errorf("got %+v", line)
	}
}

func TestTokenizeLineBareEqu(t *testing.T) {
	line, ok := TokenizeLine("SCREEN EQU $2000")
	if !ok {
		t.Fatal("expected ok")
	}
	if line.Label != "SCREEN" || line.Mnemonic != "EQU" || line.Operand != "$2000" {
		t.Errorf("got %+v", line)
	}
}

func TestTokenizeLineLabelOnly(t *testing.T) {
	line, ok := TokenizeLine("DONE:")
	if !ok {
		t.Fatal("expected ok")
	}
	if line.Label != "DONE" || line.Mnemonic != "" {
		t.Errorf("got %+v", line)
	}
}

func TestTokenizeLineSemicolonInsideQuotesNotAComment(t *testing.T) {
	line, ok := TokenizeLine(`DB "a;b"`)
	if !ok {
		t.Fatal("expected ok")
	}
	if line.Operand != `"a;b"` {
		t.Errorf("expected operand to keep the quoted semicolon, got %q", line.Operand)
	}
}

func TestTokenizeLineUnrecognized(t *testing.T) {
	_, ok := TokenizeLine("1BADSTART foo")
	if ok {
		t.Error("expected unrecognized line to return ok=false")
	}
}
