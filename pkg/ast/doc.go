// Package ast provides the in-memory tree representation of an AVI file.
//
// The tree mirrors the RIFF nesting exactly. A node is either a *List (the
// top-level RIFF node or a LIST, both carrying a list type and children) or
// a *Chunk (a leaf holding a decoded format.Record). Declared sizes are kept
// as read from the file; the pad byte that follows an odd-sized body is
// recorded in Chunk.Padding but never counted in a size. Its value is kept
// in PadByte so files with non-zero padding re-encode unchanged.
//
// # Core Types
//
// Tree holds the RIFF root. Lookups cover the structures avikit edits:
// Movi and Index locate the frame-bearing sections, Streams the strl lists,
// and Find resolves slash-separated paths such as "hdrl/strl[1]/strh".
//
// # Mutation
//
// Trees are created once per parse. The only sanctioned mutation is
// replacing a whole sub-layout (SetPayload, SetChildren), which recomputes
// declared sizes from the new content, so a resized section never keeps a
// stale size.
package ast
