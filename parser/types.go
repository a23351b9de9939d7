package parser

// Instruction is one parsed code-section entry: a mnemonic plus its decoded
// arguments, in the order InstructionTable[Mnemonic].Args describes them.
// Each element of Args is a RegisterArg (for ArgRegister), or a string
// holding the argument exactly as written in the source (for ArgConstant
// and ArgLabel — both are resolved later, by the encoder).
type Instruction struct {
	Mnemonic string
	Args     []any
	Line     int
}

// Program is the Parser's complete output: the data section with its
// labels, and the code section with its labels. It is read-only once
// Parse returns.
type Program struct {
	DataSize    int
	DataSection []byte
	DataLabels  map[string]int

	CodeSection []Instruction
	CodeLabels  map[string]int

	// LastLine/LastText record the most recently classified source line,
	// for use in top-level diagnostics when an error has no more specific
	// position of its own.
	LastLine int
	LastText string
}
