package parser

// ArgKind identifies one positional argument of an instruction.
type ArgKind byte

const (
	ArgRegister ArgKind = iota // R — register argument, by value or by reference
	ArgConstant                // C — 64-bit integer constant
	ArgLabel                   // L — code label, resolves to a 32-bit bit offset
)

// InstructionSpec is the static per-mnemonic encoding rule: the verbatim
// opcode bitstring (emitted MSB-first, exactly as written here) and the
// ordered argument kinds that follow it.
type InstructionSpec struct {
	Opcode string
	Args   []ArgKind
}

// InstructionTable is the fixed ESET-VM2 opcode table. It is never extended
// at runtime; instruction-set extension is an explicit non-goal.
var InstructionTable = map[string]InstructionSpec{
	"mov":           {"000", []ArgKind{ArgRegister, ArgRegister}},
	"loadConst":     {"001", []ArgKind{ArgConstant, ArgRegister}},
	"add":           {"010001", []ArgKind{ArgRegister, ArgRegister, ArgRegister}},
	"sub":           {"010010", []ArgKind{ArgRegister, ArgRegister, ArgRegister}},
	"div":           {"010011", []ArgKind{ArgRegister, ArgRegister, ArgRegister}},
	"mod":           {"010100", []ArgKind{ArgRegister, ArgRegister, ArgRegister}},
	"mul":           {"010101", []ArgKind{ArgRegister, ArgRegister, ArgRegister}},
	"compare":       {"01100", []ArgKind{ArgRegister, ArgRegister, ArgRegister}},
	"jump":          {"01101", []ArgKind{ArgLabel}},
	"jumpEqual":     {"01110", []ArgKind{ArgLabel, ArgRegister, ArgRegister}},
	"read":          {"10000", []ArgKind{ArgRegister, ArgRegister, ArgRegister, ArgRegister}},
	"write":         {"10001", []ArgKind{ArgRegister, ArgRegister, ArgRegister}},
	"consoleRead":   {"10010", []ArgKind{ArgRegister}},
	"consoleWrite":  {"10011", []ArgKind{ArgRegister}},
	"createThread":  {"10100", []ArgKind{ArgLabel, ArgRegister}},
	"joinThread":    {"10101", []ArgKind{ArgRegister}},
	"hlt":           {"10110", nil},
	"sleep":         {"10111", []ArgKind{ArgRegister}},
	"call":          {"1100", []ArgKind{ArgLabel}},
	"ret":           {"1101", nil},
	"lock":          {"1110", []ArgKind{ArgRegister}},
	"unlock":        {"1111", []ArgKind{ArgRegister}},
}

// Width is a data-access reference width for an indirect register argument.
type Width byte

const (
	WidthByte Width = iota
	WidthWord
	WidthDword
	WidthQword
)

// widthNames maps the source-language spelling to its Width. The encoder
// packs the Width value itself as a 2-bit LSB-first field; no separate
// string-code table is needed on that side.
var widthNames = map[string]Width{
	"byte":  WidthByte,
	"word":  WidthWord,
	"dword": WidthDword,
	"qword": WidthQword,
}

// MaxRegisterID is the documented inclusive upper bound on a register id.
// Only 4 bits encode the id on the wire, so 16 overflows and aliases with
// 0; this is intentional rather than a bug (see Options.StrictRegisterBound
// for an opt-in rejection of the alias).
const MaxRegisterID = 16
