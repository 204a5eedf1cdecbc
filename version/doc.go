// Package version reports build information for the catlog binary.
//
// Version, commit and build time can be set at link time:
//
//	go build -ldflags "-X github.com/kbukum/catlog/version.Version=1.2.0" ./cmd/catlog
//
// Unset values fall back to the module build info embedded by the Go
// toolchain.
package version
