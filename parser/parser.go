// Package parser consumes a lexed ESET-VM2 token stream and produces the
// parsed program: a data section and its labels, a code section and its
// labels. Label references inside code arguments are stored verbatim
// (label names, constant literals) for the encoder to resolve; the parser
// itself never computes byte offsets.
package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/eset-vm2/assembler/lexer"
)

type section int

const (
	sectionNone section = iota
	sectionData
	sectionCode
)

// Options controls parser behavior that isn't part of the language itself.
// The zero value is the assembler's out-of-the-box behavior.
type Options struct {
	// StrictRegisterBound rejects a register id of exactly 16 instead of
	// accepting it and truncating to 4 bits on the wire. See
	// internal/config's Assembler.StrictRegisterBound.
	StrictRegisterBound bool
}

// Parse walks the lexed lines and builds a Program, using default Options.
// It returns a *ParseError on the first fatal condition.
func Parse(lines []lexer.Line) (*Program, error) {
	return ParseWithOptions(lines, Options{})
}

// ParseWithOptions is Parse with explicit Options.
func ParseWithOptions(lines []lexer.Line, opts Options) (*Program, error) {
	p := &Program{
		DataLabels: make(map[string]int),
		CodeLabels: make(map[string]int),
	}

	mode := sectionNone
	dataSizeSet := false

	for _, line := range lines {
		p.LastLine = line.Number
		p.LastText = line.Text

		tokens := line.Tokens
		first := tokens[0]

		switch {
		case strings.HasPrefix(first, "."):
			if err := parseDirective(p, &mode, &dataSizeSet, line.Number, tokens); err != nil {
				return nil, err
			}

		case len(tokens) == 1 && strings.HasSuffix(first, ":"):
			if err := parseLabel(p, mode, line.Number, first); err != nil {
				return nil, err
			}

		case mode == sectionCode:
			if err := parseInstruction(p, line.Number, tokens, opts); err != nil {
				return nil, err
			}

		case mode == sectionData:
			if err := parseDataBytes(p, line.Number, tokens); err != nil {
				return nil, err
			}

		default:
			return nil, newParseError(line.Number, "Bad token")
		}
	}

	return p, nil
}

func parseDirective(p *Program, mode *section, dataSizeSet *bool, lineNo int, tokens []string) error {
	switch tokens[0] {
	case ".dataSize":
		if *dataSizeSet {
			return newParseError(lineNo, "Double data size spotted")
		}
		if len(tokens) < 2 {
			return newParseError(lineNo, "Bad token")
		}
		n, err := strconv.Atoi(tokens[1])
		if err != nil {
			return newParseError(lineNo, "Bad token")
		}
		p.DataSize = n
		*dataSizeSet = true

	case ".code":
		*mode = sectionCode

	case ".data":
		*mode = sectionData

	default:
		return newParseError(lineNo, "Bad token")
	}

	return nil
}

func parseLabel(p *Program, mode section, lineNo int, token string) error {
	name := strings.TrimSuffix(token, ":")

	switch mode {
	case sectionCode:
		if _, exists := p.CodeLabels[name]; exists {
			return newParseError(lineNo, "Duplicated label")
		}
		p.CodeLabels[name] = len(p.CodeSection)

	case sectionData:
		if _, exists := p.DataLabels[name]; exists {
			return newParseError(lineNo, "Duplicated label")
		}
		p.DataLabels[name] = len(p.DataSection)

	default:
		return newParseError(lineNo, "Bad label")
	}

	return nil
}

// splitArguments joins the tokens after the mnemonic with single spaces and
// splits on commas, trimming surrounding whitespace from each piece.
func splitArguments(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	joined := strings.Join(tokens, " ")
	parts := strings.Split(joined, ",")
	args := make([]string, len(parts))
	for i, part := range parts {
		args[i] = strings.TrimSpace(part)
	}
	return args
}

func parseInstruction(p *Program, lineNo int, tokens []string, opts Options) error {
	mnemonic := tokens[0]

	spec, ok := InstructionTable[mnemonic]
	if !ok {
		return newParseError(lineNo, "Bad opcode [%s]", mnemonic)
	}

	argStrings := splitArguments(tokens[1:])
	if len(argStrings) != len(spec.Args) {
		return newParseError(lineNo, "Bad opcode argument count")
	}

	inst := Instruction{Mnemonic: mnemonic, Line: lineNo}

	for i, kind := range spec.Args {
		raw := argStrings[i]

		switch kind {
		case ArgRegister:
			reg, err := parseRegisterArg(raw, opts.StrictRegisterBound)
			if err != nil {
				if errors.Is(err, errRegisterTooBig) {
					return newParseError(lineNo, "Bad register argument type (too big)")
				}
				return newParseError(lineNo, "Bad register argument type [%s]", raw)
			}
			inst.Args = append(inst.Args, reg)

		case ArgConstant, ArgLabel:
			// Numeric/label resolution both happen at emit time; the
			// parser stores the argument text verbatim.
			inst.Args = append(inst.Args, raw)
		}
	}

	p.CodeSection = append(p.CodeSection, inst)
	return nil
}

func parseDataBytes(p *Program, lineNo int, tokens []string) error {
	for _, tok := range tokens {
		value, err := strconv.ParseInt(tok, 16, 64)
		if err != nil || value > 255 || value < 0 {
			return newParseError(lineNo, "Bad value in line")
		}
		p.DataSection = append(p.DataSection, byte(value))
	}
	return nil
}
