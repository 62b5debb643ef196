package model

import (
	"errors"
	"fmt"
)

var (
	// ErrStructure is wrapped by every *StructureError.
	ErrStructure = errors.New("model: malformed document")

	// ErrNoLayers is returned for documents without layers.
	ErrNoLayers = errors.New("model: composition has no layers")

	// ErrStrict is returned when a strict parse produced warnings.
	ErrStrict = errors.New("model: warnings in strict mode")
)

// StructureError describes a structural failure at a JSON location.
type StructureError struct {
	Path string
	Msg  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("model: %s: %s", e.Path, e.Msg)
}

// Unwrap returns ErrStructure.
func (e *StructureError) Unwrap() error {
	return ErrStructure
}

func structuralf(path, format string, args ...any) error {
	return &StructureError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
