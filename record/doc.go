// Package record holds the immutable value emitted for every accepted log
// event, together with the Severity scale used to filter events.
//
// A Record is built once by the dispatcher and then read by the console
// renderer and by every transport. Its fields are unexported so no reader
// can change what the others see.
package record
