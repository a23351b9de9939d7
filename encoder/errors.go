package encoder

import "fmt"

// AssembleError is a fatal error raised while emitting the binary image:
// an undefined code label or an unparsable constant literal.
type AssembleError struct {
	Message string
}

func (e *AssembleError) Error() string {
	return e.Message
}

func newUndefinedLabelError(name string) *AssembleError {
	return &AssembleError{Message: fmt.Sprintf("Undefined code label %s", name)}
}
