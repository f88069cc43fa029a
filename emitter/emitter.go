// Package emitter implements the second pass: encoding each first-pass
// token's opcode and operand bytes and pushing them into the correct
// memory region. Each operand is resolved via the evaluator, range-checked,
// then written byte-by-byte; ORG resets every region's contiguity tracker
// and EQU tokens are skipped since they carry no emitted bytes.
package emitter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lookbusy1344/sap2-asm/instrset"
	"github.com/lookbusy1344/sap2-asm/parser"
	"github.com/lookbusy1344/sap2-asm/region"
)

// Emitter drives the second pass over a completed token stream.
type Emitter struct {
	eval     *parser.Evaluator
	regions  *region.Manager
	warnings *parser.ErrorList
	logger   *slog.Logger
}

func New(symtab *parser.SymbolTable, regions *region.Manager, warnings *parser.ErrorList, logger *slog.Logger) *Emitter {
	return &Emitter{
		eval:     parser.NewEvaluator(symtab),
		regions:  regions,
		warnings: warnings,
		logger:   logger,
	}
}

// Run encodes every token in order, writing bytes into the region manager.
func (e *Emitter) Run(tokens []parser.Token) error {
	var globalAddr uint16

	for _, tok := range tokens {
		switch tok.Mnemonic {
		case "EQU":
			continue
		case "ORG":
			v, err := e.eval.Eval(tok.Operand, tok.Pos)
			if err != nil {
				return err
			}
			if v < 0 || v > 0xFFFF {
				return &parser.Error{Pos: tok.Pos, Kind: parser.KindEncoding, Message: fmt.Sprintf("ORG address 0x%X out of 16-bit range", v)}
			}
			globalAddr = uint16(v)
			e.regions.InvalidateContiguity()
			continue
		}

		d, ok := instrset.Lookup(tok.Mnemonic)
		if !ok {
			return &parser.Error{Pos: tok.Pos, Kind: parser.KindInvalidInstruction, Message: fmt.Sprintf("unknown mnemonic %q at emission time", tok.Mnemonic)}
		}

		switch tok.Mnemonic {
		case "DB":
			if err := e.emitDB(tok, &globalAddr); err != nil {
				return err
			}
			continue
		case "DW":
			if err := e.emitDW(tok, &globalAddr); err != nil {
				return err
			}
			continue
		}

		if d.HasOpcode {
			e.emitByte(d.Opcode, &globalAddr, tok.Pos)
		}

		switch d.Size {
		case 2:
			if err := e.emit1ByteOperand(tok, &globalAddr); err != nil {
				return err
			}
		case 3:
			if err := e.emit2ByteOperand(tok, &globalAddr); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Emitter) emitByte(b byte, addr *uint16, pos parser.Position) {
	r := e.regions.Find(*addr)
	if r == nil {
		msg := fmt.Sprintf("byte 0x%02X at address 0x%04X is outside all configured regions; dropped", b, *addr)
		e.warnings.AddWarning(pos, msg)
		if e.logger != nil {
			e.logger.Warn("byte outside all regions", "address", fmt.Sprintf("0x%04X", *addr), "file", pos.Filename, "line", pos.Line)
		}
	} else {
		r.EmitByte(b, *addr)
	}
	*addr++
}

func (e *Emitter) emit1ByteOperand(tok parser.Token, addr *uint16) error {
	v, err := e.eval.Eval(stripImmediateMarker(tok.Operand), tok.Pos)
	if err != nil {
		return err
	}
	if v < 0 || v > 0xFF {
		return &parser.Error{Pos: tok.Pos, Kind: parser.KindEncoding, Message: fmt.Sprintf("operand value 0x%X out of 8-bit range", v)}
	}
	e.emitByte(byte(v), addr, tok.Pos)
	return nil
}

func (e *Emitter) emit2ByteOperand(tok parser.Token, addr *uint16) error {
	v, err := e.eval.Eval(stripImmediateMarker(tok.Operand), tok.Pos)
	if err != nil {
		return err
	}
	if v < 0 || v > 0xFFFF {
		return &parser.Error{Pos: tok.Pos, Kind: parser.KindEncoding, Message: fmt.Sprintf("operand value 0x%X out of 16-bit range", v)}
	}
	e.emitByte(byte(v&0xFF), addr, tok.Pos)
	e.emitByte(byte((v>>8)&0xFF), addr, tok.Pos)
	return nil
}

func (e *Emitter) emitDB(tok parser.Token, addr *uint16) error {
	items := splitItems(tok.Operand)
	if len(items) == 0 {
		return &parser.Error{Pos: tok.Pos, Kind: parser.KindInvalidDirective, Message: "DB requires at least one item"}
	}
	for _, item := range items {
		if isQuoted(item) {
			decoded, err := parser.ProcessStringEscapes(item[1 : len(item)-1])
			if err != nil {
				return &parser.Error{Pos: tok.Pos, Kind: parser.KindLexical, Message: err.Error(), Context: item}
			}
			for _, b := range decoded {
				e.emitByte(b, addr, tok.Pos)
			}
			continue
		}
		v, err := e.eval.Eval(stripImmediateMarker(item), tok.Pos)
		if err != nil {
			return err
		}
		if v < 0 || v > 0xFF {
			return &parser.Error{Pos: tok.Pos, Kind: parser.KindEncoding, Message: fmt.Sprintf("DB item value 0x%X out of 8-bit range", v), Context: item}
		}
		e.emitByte(byte(v), addr, tok.Pos)
	}
	return nil
}

func (e *Emitter) emitDW(tok parser.Token, addr *uint16) error {
	items := splitItems(tok.Operand)
	if len(items) == 0 {
		return &parser.Error{Pos: tok.Pos, Kind: parser.KindInvalidDirective, Message: "DW requires at least one item"}
	}
	for _, item := range items {
		v, err := e.eval.Eval(item, tok.Pos)
		if err != nil {
			return err
		}
		if v < 0 || v > 0xFFFF {
			return &parser.Error{Pos: tok.Pos, Kind: parser.KindEncoding, Message: fmt.Sprintf("DW item value 0x%X out of 16-bit range", v), Context: item}
		}
		e.emitByte(byte(v&0xFF), addr, tok.Pos)
		e.emitByte(byte((v>>8)&0xFF), addr, tok.Pos)
	}
	return nil
}

func stripImmediateMarker(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimPrefix(s, "#")
}

func isQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

func splitItems(operand string) []string {
	raw := parser.SplitRespectingQuotes(operand, ',')
	items := make([]string, 0, len(raw))
	for _, r := range raw {
		items = append(items, strings.TrimSpace(r))
	}
	return items
}
