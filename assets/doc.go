// Package assets provides reference image and font providers for layer
// trees: images embedded as data URIs or stored next to the document, and
// glyph outlines from TrueType and OpenType fonts.
package assets
