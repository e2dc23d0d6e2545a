package version

// Version is the release version, overridable at link time with
// -ldflags "-X hinditts/pkg/version.Version=...".
var Version = "v0.1.0"
