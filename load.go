package lottie

import (
	"io"

	"github.com/gogpu/gg-lottie/model"
)

// LoadComposition parses a JSON document.
//
// Recoverable anomalies are logged and collected in the Warnings of the
// result. Structural failures return an error matching
// [model.ErrStructure].
func LoadComposition(data []byte, opts ...model.Option) (*model.Composition, error) {
	return model.Parse(data, opts...)
}

// LoadCompositionReader parses a JSON document read from r.
func LoadCompositionReader(r io.Reader, opts ...model.Option) (*model.Composition, error) {
	return model.ParseReader(r, opts...)
}

// LoadCompositionFile parses the JSON document at path.
func LoadCompositionFile(path string, opts ...model.Option) (*model.Composition, error) {
	return model.ParseFile(path, opts...)
}
