// Package instrset holds the static instruction table for the SAP2-class
// CPU this assembler targets: a compile-time mapping from canonical
// mnemonic to its opcode and encoded size.
//
// Grounded on original_source/software/assembler/src/constants.py's
// INSTRUCTION_SET table, which supplies concrete opcodes for most of the
// mnemonics this table needs. A handful of required mnemonics
// (RET, SEC, CLC, PHA, PLA, PHP, PLP, JNN, JC, JNC, JSR) are not present in
// any retrieved source file; see DESIGN.md for the documented, principled
// opcode assignment used to fill that gap.
package instrset

// Descriptor is one instruction-table entry: its opcode (absent for the
// DB/DW data directives, whose size is per-item rather than fixed) and its
// total encoded size in bytes, including the opcode byte.
type Descriptor struct {
	Opcode    byte
	HasOpcode bool
	Size      int
}

// Table is the canonical mnemonic -> Descriptor mapping. DB and DW are
// data directives: HasOpcode is false and Size is the per-item size, not
// the instruction's total size (which depends on operand count).
var Table = map[string]Descriptor{
	// Zero-operand, size 1.
	"NOP":    {Opcode: 0x00, HasOpcode: true, Size: 1},
	"HLT":    {Opcode: 0x01, HasOpcode: true, Size: 1},
	"RET":    {Opcode: 0x02, HasOpcode: true, Size: 1},
	"SEC":    {Opcode: 0x03, HasOpcode: true, Size: 1},
	"CLC":    {Opcode: 0x04, HasOpcode: true, Size: 1},
	"PHA":    {Opcode: 0x05, HasOpcode: true, Size: 1},
	"PLA":    {Opcode: 0x06, HasOpcode: true, Size: 1},
	"PHP":    {Opcode: 0x07, HasOpcode: true, Size: 1},
	"PLP":    {Opcode: 0x08, HasOpcode: true, Size: 1},
	"ADD_B":  {Opcode: 0x20, HasOpcode: true, Size: 1},
	"ADD_C":  {Opcode: 0x21, HasOpcode: true, Size: 1},
	"ADC_B":  {Opcode: 0x22, HasOpcode: true, Size: 1},
	"ADC_C":  {Opcode: 0x23, HasOpcode: true, Size: 1},
	"SUB_B":  {Opcode: 0x24, HasOpcode: true, Size: 1},
	"SUB_C":  {Opcode: 0x25, HasOpcode: true, Size: 1},
	"SBC_B":  {Opcode: 0x26, HasOpcode: true, Size: 1},
	"SBC_C":  {Opcode: 0x27, HasOpcode: true, Size: 1},
	"INR_A":  {Opcode: 0x28, HasOpcode: true, Size: 1},
	"DCR_A":  {Opcode: 0x29, HasOpcode: true, Size: 1},
	"ANA_B":  {Opcode: 0x30, HasOpcode: true, Size: 1},
	"ANA_C":  {Opcode: 0x31, HasOpcode: true, Size: 1},
	"ORA_B":  {Opcode: 0x34, HasOpcode: true, Size: 1},
	"ORA_C":  {Opcode: 0x35, HasOpcode: true, Size: 1},
	"XRA_B":  {Opcode: 0x38, HasOpcode: true, Size: 1},
	"XRA_C":  {Opcode: 0x39, HasOpcode: true, Size: 1},
	"CMP_B":  {Opcode: 0x3C, HasOpcode: true, Size: 1},
	"CMP_C":  {Opcode: 0x3D, HasOpcode: true, Size: 1},
	"RAL":    {Opcode: 0x40, HasOpcode: true, Size: 1},
	"RAR":    {Opcode: 0x41, HasOpcode: true, Size: 1},
	"CMA":    {Opcode: 0x42, HasOpcode: true, Size: 1},
	"INR_B":  {Opcode: 0x50, HasOpcode: true, Size: 1},
	"DCR_B":  {Opcode: 0x51, HasOpcode: true, Size: 1},
	"INR_C":  {Opcode: 0x54, HasOpcode: true, Size: 1},
	"DCR_C":  {Opcode: 0x55, HasOpcode: true, Size: 1},
	"MOV_AB": {Opcode: 0x60, HasOpcode: true, Size: 1},
	"MOV_AC": {Opcode: 0x61, HasOpcode: true, Size: 1},
	"MOV_BA": {Opcode: 0x62, HasOpcode: true, Size: 1},
	"MOV_BC": {Opcode: 0x63, HasOpcode: true, Size: 1},
	"MOV_CA": {Opcode: 0x64, HasOpcode: true, Size: 1},
	"MOV_CB": {Opcode: 0x65, HasOpcode: true, Size: 1},

	// One-operand immediate, size 2.
	"ANI":   {Opcode: 0x32, HasOpcode: true, Size: 2},
	"ORI":   {Opcode: 0x36, HasOpcode: true, Size: 2},
	"XRI":   {Opcode: 0x3A, HasOpcode: true, Size: 2},
	"LDI_A": {Opcode: 0xB0, HasOpcode: true, Size: 2},
	"LDI_B": {Opcode: 0xB1, HasOpcode: true, Size: 2},
	"LDI_C": {Opcode: 0xB2, HasOpcode: true, Size: 2},

	// Two-operand absolute, size 3.
	"JMP": {Opcode: 0x10, HasOpcode: true, Size: 3},
	"JZ":  {Opcode: 0x11, HasOpcode: true, Size: 3},
	"JNZ": {Opcode: 0x12, HasOpcode: true, Size: 3},
	"JN":  {Opcode: 0x13, HasOpcode: true, Size: 3},
	"JNN": {Opcode: 0x14, HasOpcode: true, Size: 3},
	"JC":  {Opcode: 0x15, HasOpcode: true, Size: 3},
	"JNC": {Opcode: 0x16, HasOpcode: true, Size: 3},
	"JSR": {Opcode: 0x17, HasOpcode: true, Size: 3},
	"LDA": {Opcode: 0xA0, HasOpcode: true, Size: 3},
	"STA": {Opcode: 0xA1, HasOpcode: true, Size: 3},

	// Data directives: size is per-item, not a fixed instruction size.
	"DB": {HasOpcode: false, Size: 1},
	"DW": {HasOpcode: false, Size: 2},
}

// Lookup returns the descriptor for a canonical (already mnemonic-normalized)
// instruction name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := Table[name]
	return d, ok
}

// IsDataDirective reports whether name is DB or DW.
func IsDataDirective(name string) bool {
	return name == "DB" || name == "DW"
}
