package emitter

import (
	"testing"

	"github.com/lookbusy1344/sap2-asm/parser"
	"github.com/lookbusy1344/sap2-asm/region"
)

// These exercise common end-to-end assembly scenarios — origin handling,
// immediates, non-contiguous writes, local labels, conditional defaulting,
// and string escapes — each checked against a fresh implicit region
// covering the full address space.

func TestScenarioOriginAndHalt(t *testing.T) {
	files := map[string][]string{
		"s.asm": {"ORG $F000", "HLT"},
	}
	regions := region.NewImplicitManager("out.hex")
	assemble(t, files, "s.asm", regions)

	want := "@F000\n01\n"
	if got := regions.Regions[0].Text(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioEquAndImmediate(t *testing.T) {
	files := map[string][]string{
		"s.asm": {
			"VAL: EQU $42",
			"ORG 0",
			"LDI A, #VAL",
			"HLT",
		},
	}
	regions := region.NewImplicitManager("out.hex")
	assemble(t, files, "s.asm", regions)

	want := "@0000\nB0\n42\n01\n"
	if got := regions.Regions[0].Text(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioNonContiguousWrites(t *testing.T) {
	files := map[string][]string{
		"s.asm": {
			"ORG $0000",
			"DB $AA",
			"ORG $0010",
			"DB $BB",
		},
	}
	regions := region.NewImplicitManager("out.hex")
	assemble(t, files, "s.asm", regions)

	want := "@0000\nAA\n@0010\nBB\n"
	if got := regions.Regions[0].Text(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioLocalLabels(t *testing.T) {
	files := map[string][]string{
		"s.asm": {
			"ORG 0",
			"R1: NOP",
			".loop: JMP .loop",
		},
	}
	regions := region.NewImplicitManager("out.hex")
	read := func(path string) ([]string, error) { return files[path], nil }
	resolve := func(current, include string) string { return include }

	program, warnings, err := parser.RunFirstPass("s.asm", read, resolve)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	if v, ok := program.Symbols.Lookup("R1"); !ok || v != 0x0000 {
		t.Errorf("R1 = 0x%04X, ok=%v", v, ok)
	}
	if v, ok := program.Symbols.Lookup("R1.loop"); !ok || v != 0x0001 {
		t.Errorf("R1.loop = 0x%04X, ok=%v", v, ok)
	}

	em := New(program.Symbols, regions, warnings, nil)
	if err := em.Run(program.Tokens); err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	want := "@0000\n00\n10\n01\n00\n"
	if got := regions.Regions[0].Text(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioConditionalDefaulting(t *testing.T) {
	files := map[string][]string{
		"s.asm": {
			"USER EQU $50",
			`INCLUDE "lib.inc"`,
		},
		"lib.inc": {
			"IFNDEF USER",
			"USER EQU $10",
			"ENDIF",
		},
	}
	read := func(path string) ([]string, error) { return files[path], nil }
	resolve := func(current, include string) string { return include }

	program, _, err := parser.RunFirstPass("s.asm", read, resolve)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	v, ok := program.Symbols.Lookup("USER")
	if !ok || v != 0x50 {
		t.Errorf("USER = 0x%02X, ok=%v, want 0x50", v, ok)
	}
}

func TestScenarioDBStringWithEscapes(t *testing.T) {
	files := map[string][]string{
		"s.asm": {"ORG 0", `DB "Hi\n", 0`},
	}
	regions := region.NewImplicitManager("out.hex")
	assemble(t, files, "s.asm", regions)

	want := "@0000\n48\n69\n0A\n00\n"
	if got := regions.Regions[0].Text(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
