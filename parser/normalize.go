package parser

import (
	"fmt"
	"strings"
)

// registerOps are surface mnemonics that take a single bare register
// operand and normalize to "<op>_<reg>" with no operand, per §6.
var registerOps = map[string]bool{
	"INR": true, "DCR": true,
	"ADD": true, "SUB": true, "ADC": true, "SBC": true,
	"ANA": true, "ORA": true, "XRA": true, "CMP": true,
}

// NormalizeMnemonic applies the mnemonic-normalization rewrites of §6 to a
// surface mnemonic and operand, returning the canonical instruction-table
// name and the (possibly now-empty) operand to encode. Mnemonics outside
// the normalized set (directives, already-canonical instructions, macro
// invocations) are returned unchanged.
func NormalizeMnemonic(mnemonic, operand string, pos Position) (string, string, error) {
	switch mnemonic {
	case "LDI":
		reg, imm, err := splitTwo(operand, pos, "LDI")
		if err != nil {
			return "", "", err
		}
		return "LDI_" + strings.ToUpper(reg), imm, nil
	case "MOV":
		dst, src, err := splitTwo(operand, pos, "MOV")
		if err != nil {
			return "", "", err
		}
		return "MOV_" + strings.ToUpper(dst) + strings.ToUpper(src), "", nil
	default:
		if registerOps[mnemonic] {
			reg := strings.TrimSpace(operand)
			if reg == "" {
				return "", "", &Error{Pos: pos, Kind: KindInvalidOperand, Message: fmt.Sprintf("%s requires a register operand", mnemonic)}
			}
			return mnemonic + "_" + strings.ToUpper(reg), "", nil
		}
	}
	return mnemonic, operand, nil
}

func splitTwo(operand string, pos Position, mnemonic string) (string, string, error) {
	items := splitOperandItems(operand)
	if len(items) != 2 || items[0] == "" || items[1] == "" {
		return "", "", &Error{Pos: pos, Kind: KindInvalidOperand, Message: fmt.Sprintf("%s requires two comma-separated operands", mnemonic)}
	}
	return items[0], items[1], nil
}
