// Package isla implements the ISLA serialization format in both of its
// variants: a human-readable, indentation-structured text form and a
// compact, length-tagged binary form.
//
// # Dual Encoding
//
// ISLA has two equivalent encodings:
//   - Text:   line-oriented, tab-indented, comment-bearing, UTF-8
//   - Binary: 4-byte type/length headers, no padding, no checksum
//
// Both share the same tagged-union data model: leaf, list, map, and (text
// only) none.
//
// # Text Syntax
//
//	ISLA1
//	name=Arsenal
//	aliases:
//		-Gunners
//		-The Arsenal
//	address="
//	Emirates Stadium
//	London
//	"
//
// # Scope
//
// Higher-level typed decoding (numbers, dates, colors), file I/O, CLI
// tooling, and logging are left to callers. Decoding is not safe for
// concurrent mutation, but concurrent read-only access is fine.
package isla
