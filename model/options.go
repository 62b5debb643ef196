package model

// DefaultMinVersion is the oldest document version parsed without a
// warning.
const DefaultMinVersion = "4.4.0"

type parseOptions struct {
	strict     bool
	minVersion string
}

// Option configures Parse.
type Option func(*parseOptions)

// WithStrict makes Parse fail with ErrStrict when any warning is produced.
func WithStrict() Option {
	return func(o *parseOptions) {
		o.strict = true
	}
}

// WithMinVersion sets the oldest version accepted without a warning.
func WithMinVersion(v string) Option {
	return func(o *parseOptions) {
		o.minVersion = v
	}
}
