// Package encoder walks a parsed ESET-VM2 program and emits the bit-packed
// binary image the VM expects, resolving code-label references (including
// forward ones) to the raw bit offset of their target instruction along the
// way.
package encoder

import (
	"fmt"

	"github.com/eset-vm2/assembler/parser"
)

// Magic is the fixed 8-byte header every ESET-VM2 image starts with.
const Magic = "ESET-VM2"

// Image is the fully assembled program, ready to be written out by
// WriteTo.
type Image struct {
	DataSize          uint32
	DataInitialLength uint32
	Code              []byte
	Data              []byte

	// Warnings collects non-fatal diagnostics produced during assembly
	// (currently just the .dataSize widening warning). The driver decides
	// whether and how to surface them; Assemble never prints anything
	// itself.
	Warnings []string

	// InstructionOffsets[i] is the bit offset of instruction i's first
	// bit, the same value a label reference to it resolves to. Exposed
	// for tooling (internal/listing) that wants to show the address of
	// each instruction without re-deriving it from the packed bytes.
	InstructionOffsets []int
}

// patch is a deferred overwrite: a forward label reference left a 32-bit
// zero placeholder at bit position Pos, to be filled once the address of
// instruction index Target is known.
type patch struct {
	Pos    int
	Target int
}

// Assemble encodes program into an Image. It fails on an undefined code
// label or on a constant literal that does not parse as a 64-bit integer
// (the parser stores constants unchecked).
func Assemble(program *parser.Program) (*Image, error) {
	var buf bitBuffer

	// offsets[i] is the bit offset of instruction i's first bit. It is
	// built up incrementally, one entry per instruction processed, so
	// that "offset already known" (backward/self reference) and "offset
	// not yet known" (forward reference) can both be asked simply as
	// "is target within the slice built so far".
	offsets := make([]int, 0, len(program.CodeSection))
	var patches []patch

	for _, inst := range program.CodeSection {
		offsets = append(offsets, buf.Len())

		spec := parser.InstructionTable[inst.Mnemonic]
		buf.appendMSBFirst(spec.Opcode)

		for argIdx, kind := range spec.Args {
			arg := inst.Args[argIdx]

			switch kind {
			case parser.ArgRegister:
				encodeRegister(&buf, arg.(parser.RegisterArg))

			case parser.ArgConstant:
				raw := arg.(string)
				value, err := parseConstant(raw)
				if err != nil {
					return nil, &AssembleError{Message: fmt.Sprintf("bad constant %q: %v", raw, err)}
				}
				buf.appendUintLSBFirst(value, 64)

			case parser.ArgLabel:
				name := arg.(string)
				target, exists := program.CodeLabels[name]
				if !exists {
					return nil, newUndefinedLabelError(name)
				}

				if target < len(offsets) {
					buf.appendUintLSBFirst(uint64(offsets[target]), 32)
				} else {
					patches = append(patches, patch{Pos: buf.Len(), Target: target})
					buf.appendUintLSBFirst(0, 32)
				}
			}
		}
	}

	for _, p := range patches {
		buf.patchUintLSBFirst(p.Pos, uint64(offsets[p.Target]), 32)
	}

	image := &Image{InstructionOffsets: offsets}

	actualDataSize := len(program.DataSection)
	declared := program.DataSize
	if actualDataSize > declared {
		image.Warnings = append(image.Warnings, fmt.Sprintf(
			"Warning: bad .dataSize, was %d but used %d, expanding", declared, actualDataSize))
		declared = actualDataSize
	}

	buf.padToByte()

	image.Code = buf.packBytes()
	image.Data = append([]byte(nil), program.DataSection...)
	image.DataSize = uint32(declared)
	image.DataInitialLength = uint32(actualDataSize)

	return image, nil
}

// encodeRegister appends an R-kind argument: a leading presence bit (1 for
// an indirect reference, 0 for a plain value), then — for a reference —
// the 2-bit width code, then the 4-bit register id. Every multi-bit field
// is LSB-first.
func encodeRegister(buf *bitBuffer, reg parser.RegisterArg) {
	if reg.Width == nil {
		buf.appendBit(false)
		buf.appendUintLSBFirst(uint64(reg.ID), 4)
		return
	}

	buf.appendBit(true)
	buf.appendUintLSBFirst(uint64(*reg.Width), 2)
	buf.appendUintLSBFirst(uint64(reg.ID), 4)
}
