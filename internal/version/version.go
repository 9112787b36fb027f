// internal/version/version.go
package version

// Version is set at build time via -ldflags; "dev" otherwise.
var Version = "dev"
