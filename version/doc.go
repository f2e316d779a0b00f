// Package version reports build information of the ssot binary.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/ssot/version.Version=1.0.0"
package version
