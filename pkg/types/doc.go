// Package types defines the shared vocabulary of avikit: typed errors with
// stable categories, open options, and the summary records reported for a
// parsed file.
//
// Error categories map one-to-one onto the ways an AVI round trip can fail:
//   - Input: neither a byte buffer nor a readable file path was supplied.
//   - Parse: the container structure is inconsistent (collected as a set).
//   - Reconcile: movi and idx1 disagree at some frame position.
//   - Precondition: an edit or write was requested before a successful parse.
//   - State: the handle was used after Close.
package types
