// Package version reports the version and build metadata of cm.
//
// Values come from, in order of preference:
//   - variables set at link time with -ldflags "-X .../version.Version=v1.2.0"
//     (likewise Commit and Date)
//   - the module and VCS data recorded by the Go toolchain (debug.ReadBuildInfo)
//   - development defaults
package version
