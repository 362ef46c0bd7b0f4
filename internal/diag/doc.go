// Package diag defines the diagnostic model shared by decoding, lowering and
// the driver.
//
// # Purpose
//
//   - Record every placeholder the lowering engine emits as a structured
//     finding (code, severity, position, message) so the CLI can list what was
//     not translated.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Lowering never fails: every diagnostic here is advisory. Go errors are used
// only for I/O, decoding and configuration problems.
//
// Keep the data model deterministic: the driver merges per-declaration bags in
// declaration order and the disk cache serialises diagnostics with msgpack.
package diag
