package encoder_test

import (
	"strings"
	"testing"

	"github.com/eset-vm2/assembler/encoder"
	"github.com/eset-vm2/assembler/lexer"
	"github.com/eset-vm2/assembler/parser"
)

func assembleSource(t *testing.T, src string) (*parser.Program, *encoder.Image) {
	t.Helper()
	lines, err := lexer.Lex(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	program, err := parser.Parse(lines)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	image, err := encoder.Assemble(program)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return program, image
}

func TestAssembleMinimalHalt(t *testing.T) {
	_, image := assembleSource(t, ".code\nhlt\n")

	// hlt's opcode is 5 bits (10110), padded to one byte with 3 zero bits:
	// first-emitted bit is the MSB, so the byte is 1 0 1 1 0 0 0 0 = 0xB0.
	if len(image.Code) != 1 {
		t.Fatalf("Code = %x, want 1 byte", image.Code)
	}
	if image.Code[0] != 0xB0 {
		t.Errorf("Code[0] = %#x, want 0xb0", image.Code[0])
	}
}

func TestAssembleForwardLabelIsRawBitOffset(t *testing.T) {
	src := ".code\njump end\nend:\nhlt\n"
	program, image := assembleSource(t, src)

	endOffset := image.InstructionOffsets[program.CodeLabels["end"]]
	if endOffset != 37 {
		t.Fatalf("end instruction bit offset = %d, want 37 (jump's 5-bit opcode + 32-bit operand)", endOffset)
	}

	// jump's operand is the 32 bits right after its 5-bit opcode, LSB-first.
	got := readLSBUint32(image.Code, 5)
	if got != uint32(endOffset) {
		t.Errorf("jump operand decodes to %d, want the raw bit offset %d (not divided by 8)", got, endOffset)
	}
}

func TestAssembleBackwardLabel(t *testing.T) {
	src := ".code\nstart:\nhlt\njump start\n"
	program, image := assembleSource(t, src)

	startOffset := image.InstructionOffsets[program.CodeLabels["start"]]
	jumpOpcodeBitPos := image.InstructionOffsets[1] // second instruction is jump
	got := readLSBUint32(image.Code, jumpOpcodeBitPos+5)
	if got != uint32(startOffset) {
		t.Errorf("jump operand = %d, want %d", got, startOffset)
	}
}

func TestAssembleDataSizeWidening(t *testing.T) {
	src := ".dataSize 2\n.data\nDE AD BE EF\n.code\nhlt\n"
	_, image := assembleSource(t, src)

	if image.DataSize != 4 {
		t.Errorf("DataSize = %d, want 4", image.DataSize)
	}
	if image.DataInitialLength != 4 {
		t.Errorf("DataInitialLength = %d, want 4", image.DataInitialLength)
	}
	if len(image.Warnings) != 1 {
		t.Fatalf("Warnings = %v", image.Warnings)
	}
	want := "Warning: bad .dataSize, was 2 but used 4, expanding"
	if image.Warnings[0] != want {
		t.Errorf("Warnings[0] = %q, want %q", image.Warnings[0], want)
	}
}

func TestAssembleUndefinedLabel(t *testing.T) {
	_, err := encoder.Assemble(mustParse(t, ".code\njump nowhere\n"))
	asmErr, ok := err.(*encoder.AssembleError)
	if !ok {
		t.Fatalf("err = %v, want *AssembleError", err)
	}
	if asmErr.Message != "Undefined code label nowhere" {
		t.Errorf("Message = %q", asmErr.Message)
	}
}

func TestWriteToLayout(t *testing.T) {
	_, image := assembleSource(t, ".code\nhlt\n")

	var buf strings.Builder
	n, err := image.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := []byte(buf.String())
	if int64(len(out)) != n {
		t.Fatalf("WriteTo returned %d, wrote %d bytes", n, len(out))
	}

	if string(out[:8]) != encoder.Magic {
		t.Fatalf("magic = %q, want %q", out[:8], encoder.Magic)
	}
	codeLen := readLE32(out[8:12])
	if codeLen != uint32(len(image.Code)) {
		t.Errorf("code_byte_length = %d, want %d", codeLen, len(image.Code))
	}
	if readLE32(out[12:16]) != image.DataSize {
		t.Errorf("data_size mismatch")
	}
	if readLE32(out[16:20]) != image.DataInitialLength {
		t.Errorf("data_initial_length mismatch")
	}
}

func mustParse(t *testing.T, src string) *parser.Program {
	t.Helper()
	lines, err := lexer.Lex(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	program, err := parser.Parse(lines)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return program
}

// readLSBUint32 reads a 32-bit field starting at bitPos out of the packed
// code bytes, undoing the LSB-first-on-the-wire convention.
func readLSBUint32(code []byte, bitPos int) uint32 {
	var v uint32
	for i := 0; i < 32; i++ {
		pos := bitPos + i
		byteIdx := pos / 8
		bitIdx := 7 - (pos % 8) // first-emitted bit is the MSB of its byte
		bit := (code[byteIdx] >> uint(bitIdx)) & 1
		v |= uint32(bit) << uint(i)
	}
	return v
}

func readLE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
