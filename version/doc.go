// Package version reports build information for lazyseq binaries.
//
// Version, commit and build time are set at compile time:
//
//	go build -ldflags "-X github.com/kbukum/lazyseq/version.Version=1.0.0"
package version
