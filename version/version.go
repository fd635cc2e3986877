package version

import "runtime/debug"

// Version is set via -ldflags at release build time.
var Version = "dev"

// Revision is the VCS revision, resolved from build info when not set.
var Revision = "unknown"

func init() {
	if Revision != "unknown" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			Revision = s.Value
			return
		}
	}
}
