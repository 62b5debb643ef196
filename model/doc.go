// Package model parses animation documents into an immutable Composition.
//
// Parsing separates three kinds of problems. Recoverable anomalies become
// warnings and a default value. Structural failures, such as a layer
// without a transform or a shape vertex with fewer than two coordinates,
// abort the load with a *StructureError. Unsupported features are logged
// once per distinct message and ignored.
//
// A Composition is read-only after Parse returns and may be shared by any
// number of concurrent renderers.
package model
