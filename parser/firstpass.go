package parser

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/sap2-asm/instrset"
)

// firstPassState carries every piece of working state the first pass
// needs, threaded explicitly rather than kept as package-level globals
// (per the "no global mutable state" design note: a single value is
// created per run).
type firstPassState struct {
	symtab   *SymbolTable
	macros   *MacroTable
	expander *MacroExpander
	cond     *ConditionalEngine
	eval     *Evaluator
	warnings *ErrorList

	read    LineReader
	resolve PathResolver

	address      uint16
	activeGlobal string
	macroDepth   int

	tokens []Token
}

// RunFirstPass walks entryPath (and, recursively, everything it INCLUDEs),
// producing a flat token stream and a fully-populated symbol table.
// Macro collection runs first, as a dedicated recursive pre-pass, per
// §4.D — including across conditionally-excluded INCLUDEs, since
// collection does not consult the conditional engine at all.
func RunFirstPass(entryPath string, read LineReader, resolve PathResolver) (*Program, *ErrorList, error) {
	symtab := NewSymbolTable()
	macros := NewMacroTable()
	if err := CollectMacros(entryPath, read, resolve, macros); err != nil {
		return nil, nil, err
	}

	st := &firstPassState{
		symtab:   symtab,
		macros:   macros,
		expander: NewMacroExpander(macros),
		cond:     NewConditionalEngine(),
		eval:     NewEvaluator(symtab),
		warnings: &ErrorList{},
		read:     read,
		resolve:  resolve,
	}

	if err := st.processFile(entryPath, nil); err != nil {
		return nil, st.warnings, err
	}
	if err := st.cond.Finish(); err != nil {
		return nil, st.warnings, err
	}

	return &Program{Tokens: st.tokens, Symbols: symtab}, st.warnings, nil
}

func (st *firstPassState) processFile(path string, stack []string) error {
	for _, p := range stack {
		if p == path {
			return &Error{Kind: KindCircularInclude, Message: fmt.Sprintf("circular INCLUDE of %q", path)}
		}
	}
	stack = append(stack, path)

	lines, err := st.read(path)
	if err != nil {
		return &Error{Kind: KindFileIO, Message: err.Error()}
	}

	var inMacroDef bool
	for i, raw := range lines {
		pos := Position{Filename: path, Line: i + 1}

		if inMacroDef {
			tl, ok := TokenizeLine(raw)
			if ok && !tl.Empty && strings.EqualFold(tl.Mnemonic, "ENDM") {
				inMacroDef = false
			}
			continue
		}

		tl, ok := TokenizeLine(raw)
		if ok && !tl.Empty && strings.EqualFold(tl.Mnemonic, "MACRO") {
			inMacroDef = true
			continue
		}

		if err := st.processLine(raw, path, pos, stack); err != nil {
			return err
		}
	}
	return nil
}

func (st *firstPassState) processLine(raw, path string, pos Position, stack []string) error {
	tl, ok := TokenizeLine(raw)
	if !ok {
		st.warnings.AddWarning(pos, fmt.Sprintf("unrecognized line: %q", strings.TrimRight(raw, "\r\n")))
		return nil
	}
	if tl.Empty {
		return nil
	}

	mnemonic := strings.ToUpper(tl.Mnemonic)

	switch mnemonic {
	case "IFDEF":
		st.cond.PushIf(CondIfdef, strings.TrimSpace(tl.Operand), st.symtab, pos)
		return nil
	case "IFNDEF":
		st.cond.PushIf(CondIfndef, strings.TrimSpace(tl.Operand), st.symtab, pos)
		return nil
	case "ELSE":
		return st.cond.Else(pos)
	case "ENDIF":
		return st.cond.Endif(pos)
	}

	if !st.cond.ShouldAssembleCurrentLine() {
		return nil
	}

	if mnemonic == "INCLUDE" {
		incPath, err := parseIncludeOperand(tl.Operand, pos)
		if err != nil {
			return err
		}
		childPath := st.resolve(path, incPath)
		return st.processFile(childPath, stack)
	}

	if m, isMacro := st.macros.Lookup(mnemonic); isMacro {
		if st.macroDepth >= MaxMacroNestingDepth {
			return &Error{Pos: pos, Kind: KindMacroExpansion, Message: fmt.Sprintf("macro expansion nested deeper than %d levels", MaxMacroNestingDepth)}
		}
		args := splitOperandItems(tl.Operand)
		if len(args) == 1 && args[0] == "" {
			args = nil
		}
		expanded, err := st.expander.Expand(m, args, tl.Label, pos)
		if err != nil {
			return err
		}
		st.macroDepth++
		for _, eline := range expanded {
			if err := st.processLine(eline, path, pos, stack); err != nil {
				st.macroDepth--
				return err
			}
		}
		st.macroDepth--
		return nil
	}

	newMnemonic, newOperand, err := NormalizeMnemonic(mnemonic, tl.Operand, pos)
	if err != nil {
		return err
	}

	var labelName string
	isLocalLabel := strings.HasPrefix(tl.Label, ".")
	if tl.Label != "" {
		labelName, err = st.mangleLabelDefinition(tl.Label, pos)
		if err != nil {
			return err
		}
	}

	rewrittenOperand, err := st.rewriteLocalRefs(newOperand, pos)
	if err != nil {
		return err
	}

	if labelName != "" && !isLocalLabel && newMnemonic != "EQU" {
		st.activeGlobal = labelName
	}

	if newMnemonic != "" {
		st.tokens = append(st.tokens, Token{Pos: pos, Label: labelName, Mnemonic: newMnemonic, Operand: rewrittenOperand})
	}

	switch newMnemonic {
	case "ORG":
		if rewrittenOperand == "" {
			return &Error{Pos: pos, Kind: KindInvalidDirective, Message: "ORG requires an operand"}
		}
		v, err := st.eval.Eval(rewrittenOperand, pos)
		if err != nil {
			return err
		}
		if v < 0 || v > 0xFFFF {
			return &Error{Pos: pos, Kind: KindEncoding, Message: fmt.Sprintf("ORG address 0x%X out of 16-bit range", v)}
		}
		st.address = uint16(v)
	case "EQU":
		if labelName == "" {
			return &Error{Pos: pos, Kind: KindInvalidDirective, Message: "EQU requires a label"}
		}
		if rewrittenOperand == "" {
			return &Error{Pos: pos, Kind: KindInvalidDirective, Message: "EQU requires an operand"}
		}
		v, err := st.eval.Eval(rewrittenOperand, pos)
		if err != nil {
			return err
		}
		if v < 0 || v > 0xFFFF {
			return &Error{Pos: pos, Kind: KindEncoding, Message: fmt.Sprintf("EQU value 0x%X out of 16-bit range", v)}
		}
		if err := st.symtab.Define(labelName, uint16(v), pos); err != nil {
			return err
		}
	default:
		if labelName != "" {
			if err := st.symtab.Define(labelName, st.address, pos); err != nil {
				return err
			}
		}
		if newMnemonic == "" {
			return nil
		}
		size, err := st.computeSize(newMnemonic, rewrittenOperand, pos)
		if err != nil {
			return err
		}
		st.address += uint16(size)
	}

	return nil
}

func (st *firstPassState) mangleLabelDefinition(label string, pos Position) (string, error) {
	if strings.HasPrefix(label, ".") {
		if st.activeGlobal == "" {
			return "", &Error{Pos: pos, Kind: KindInvalidOperand, Message: fmt.Sprintf("local label %q has no active global scope", label)}
		}
		return st.activeGlobal + label, nil
	}
	return label, nil
}

// rewriteLocalRefs rewrites every bare ".name" reference in operand to
// "<active_global_label>.name", using the scope in effect as the line
// begins (i.e. before this line's own label, if global, updates the
// scope).
func (st *firstPassState) rewriteLocalRefs(operand string, pos Position) (string, error) {
	var out strings.Builder
	inQuotes := false
	i := 0
	for i < len(operand) {
		c := operand[i]
		if c == '"' {
			inQuotes = !inQuotes
			out.WriteByte(c)
			i++
			continue
		}
		if !inQuotes && c == '.' && (i == 0 || !isIdentChar(rune(operand[i-1]))) && i+1 < len(operand) && isIdentStart(rune(operand[i+1])) {
			j := i + 1
			for j < len(operand) && isIdentChar(rune(operand[j])) {
				j++
			}
			if st.activeGlobal == "" {
				return "", &Error{Pos: pos, Kind: KindInvalidOperand, Message: fmt.Sprintf("local reference %q has no active global scope", operand[i:j])}
			}
			out.WriteString(st.activeGlobal)
			out.WriteString(operand[i:j])
			i = j
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String(), nil
}

// computeSize returns the byte size an instruction or DB/DW directive will
// occupy, for address-tracking purposes during the first pass.
func (st *firstPassState) computeSize(mnemonic, operand string, pos Position) (int, error) {
	switch mnemonic {
	case "DB":
		return dataSize(mnemonic, operand, pos)
	case "DW":
		return dataSize(mnemonic, operand, pos)
	default:
		d, ok := instrset.Lookup(mnemonic)
		if !ok {
			return 0, &Error{Pos: pos, Kind: KindInvalidInstruction, Message: fmt.Sprintf("unknown mnemonic %q", mnemonic)}
		}
		return d.Size, nil
	}
}

func dataSize(mnemonic, operand string, pos Position) (int, error) {
	if strings.TrimSpace(operand) == "" {
		return 0, &Error{Pos: pos, Kind: KindInvalidDirective, Message: fmt.Sprintf("%s requires at least one item", mnemonic)}
	}
	items := splitOperandItems(operand)
	total := 0
	for _, item := range items {
		if mnemonic == "DW" {
			total += 2
			continue
		}
		if isQuotedString(item) {
			decoded, err := ProcessStringEscapes(unquote(item))
			if err != nil {
				return 0, &Error{Pos: pos, Kind: KindLexical, Message: err.Error(), Context: item}
			}
			total += len(decoded)
		} else {
			total++
		}
	}
	return total, nil
}

func isQuotedString(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

func unquote(s string) string {
	if isQuotedString(s) {
		return s[1 : len(s)-1]
	}
	return s
}
