package parser

import (
	"errors"
	"regexp"
	"strconv"
)

// RegisterArg is a decoded R-kind argument: a register id, and, for an
// indirect access, the width of the memory reference it denotes.
type RegisterArg struct {
	ID    int
	Width *Width // nil => register value; non-nil => width[ rID ]
}

// registerValuePattern matches "r<digits>" — register-by-value.
// registerRefPattern matches "<width>[ r<digits> ]" with optional
// whitespace around the brackets — register-by-reference.
//
// Both are anchored only at the start (not the end): trailing characters
// after a valid match are silently ignored rather than rejected.
var (
	registerValuePattern = regexp.MustCompile(`^r([0-9]+)`)
	registerRefPattern    = regexp.MustCompile(`^(byte|word|dword|qword)\s*\[\s*r([0-9]+)\s*\]`)
)

// errNoRegisterMatch means neither register pattern matched the argument at
// all. errRegisterTooBig means a pattern matched but the register id
// exceeded the effective bound. The parser reports a different message
// for each.
var (
	errNoRegisterMatch = errors.New("no register pattern matched")
	errRegisterTooBig  = errors.New("register id too big")
)

// parseRegisterArg decodes one R-kind argument string. The accepted bound
// is MaxRegisterID (16) inclusive, which truncates to 4 bits on the wire,
// unless strict is set — see Config.Assembler.StrictRegisterBound — in
// which case exactly 16 is rejected too.
func parseRegisterArg(s string, strict bool) (RegisterArg, error) {
	maxID := MaxRegisterID
	if strict {
		maxID--
	}

	if m := registerValuePattern.FindStringSubmatch(s); m != nil {
		id, err := strconv.Atoi(m[1])
		if err != nil || id > maxID {
			return RegisterArg{}, errRegisterTooBig
		}
		return RegisterArg{ID: id}, nil
	}

	if m := registerRefPattern.FindStringSubmatch(s); m != nil {
		id, err := strconv.Atoi(m[2])
		if err != nil || id > maxID {
			return RegisterArg{}, errRegisterTooBig
		}
		w := widthNames[m[1]]
		return RegisterArg{ID: id, Width: &w}, nil
	}

	return RegisterArg{}, errNoRegisterMatch
}
