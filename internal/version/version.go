// Package version reports the build version of the commands.
package version

import "runtime/debug"

// Version may be set at link time with
// -ldflags "-X github.com/taigrr/dirstats/internal/version.Version=v1.2.3".
var Version string

// Get returns Version when set, otherwise the short VCS revision from the
// build info, suffixed with -dirty for modified trees, or "dev".
func Get() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	return fromSettings(info.Settings)
}

func fromSettings(settings []debug.BuildSetting) string {
	var revision, modified string
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}

	if revision == "" {
		return "dev"
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if modified == "true" {
		return revision + "-dirty"
	}
	return revision
}
