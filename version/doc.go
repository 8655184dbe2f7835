// Package version reports version information and build metadata for dupfinder.
//
// Values come from, in order of preference:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// Set them at build time with:
//
//	-ldflags "-X github.com/dendrascience/dupfinder/version.Version=v1.0.0 -X github.com/dendrascience/dupfinder/version.Commit=abc1234"
package version
