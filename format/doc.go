// Package format renders log records as text.
//
// Three renderers are provided, all pure functions of their inputs:
//
//   - Console: human-facing, optional timestamp and ANSI colors, data and
//     stack blocks on the following lines.
//   - Grep: one line per record, fixed-width severity tag and key=value
//     suffixes, for grep and log shippers.
//   - Machine: the complete record as JSON.
//
// None of them panics or fails. A payload that cannot be encoded (a cycle,
// a channel, a panicking MarshalJSON) is rendered as a placeholder string.
package format
