package parser

import "fmt"

// ConditionalKind distinguishes IFDEF from IFNDEF frames.
type ConditionalKind int

const (
	CondIfdef ConditionalKind = iota
	CondIfndef
)

// ConditionalFrame is one entry of the conditional-assembly stack.
type ConditionalFrame struct {
	Kind           ConditionalKind
	TestedSymbol   string
	ConditionMet   bool
	InElseBlock    bool
	ShouldAssemble bool
	Origin         Position
}

// ConditionalEngine interprets IFDEF/IFNDEF/ELSE/ENDIF as a stack of
// assembly-gating frames, queried per-line during the first pass rather
// than run as a separate text pre-pass.
type ConditionalEngine struct {
	stack []*ConditionalFrame
}

func NewConditionalEngine() *ConditionalEngine {
	return &ConditionalEngine{}
}

// ShouldAssembleCurrentLine reports whether a line should be processed
// given the current state of the conditional stack.
func (e *ConditionalEngine) ShouldAssembleCurrentLine() bool {
	if len(e.stack) == 0 {
		return true
	}
	return e.stack[len(e.stack)-1].ShouldAssemble
}

func (e *ConditionalEngine) parentGate() bool {
	if len(e.stack) == 0 {
		return true
	}
	return e.stack[len(e.stack)-1].ShouldAssemble
}

// PushIf handles IFDEF/IFNDEF S.
func (e *ConditionalEngine) PushIf(kind ConditionalKind, symbol string, symtab *SymbolTable, pos Position) {
	parent := e.parentGate()
	defined := symtab.IsDefined(symbol)
	conditionMet := defined
	if kind == CondIfndef {
		conditionMet = !defined
	}
	frame := &ConditionalFrame{
		Kind:           kind,
		TestedSymbol:   symbol,
		ConditionMet:   conditionMet,
		ShouldAssemble: parent && conditionMet,
		Origin:         pos,
	}
	e.stack = append(e.stack, frame)
}

// Else handles ELSE.
func (e *ConditionalEngine) Else(pos Position) error {
	if len(e.stack) == 0 {
		return &Error{Pos: pos, Kind: KindConditional, Message: "ELSE without matching IFDEF/IFNDEF"}
	}
	top := e.stack[len(e.stack)-1]
	if top.InElseBlock {
		return &Error{Pos: pos, Kind: KindConditional, Message: "multiple ELSE in one conditional block"}
	}
	top.InElseBlock = true
	parent := true
	if len(e.stack) > 1 {
		parent = e.stack[len(e.stack)-2].ShouldAssemble
	}
	top.ShouldAssemble = parent && !top.ConditionMet
	return nil
}

// Endif handles ENDIF.
func (e *ConditionalEngine) Endif(pos Position) error {
	if len(e.stack) == 0 {
		return &Error{Pos: pos, Kind: KindConditional, Message: "ENDIF without matching IFDEF/IFNDEF"}
	}
	e.stack = e.stack[:len(e.stack)-1]
	return nil
}

// Finish checks that the conditional stack is empty at end of file.
func (e *ConditionalEngine) Finish() error {
	if len(e.stack) != 0 {
		top := e.stack[len(e.stack)-1]
		return &Error{
			Pos:     top.Origin,
			Kind:    KindConditional,
			Message: fmt.Sprintf("unterminated conditional (missing ENDIF) opened at %s", top.Origin.String()),
		}
	}
	return nil
}
