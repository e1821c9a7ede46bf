package types

// DefaultExtension is the extension of matching files when none is
// configured.
const DefaultExtension = ".java"

type (
	// PathFilterConfig contains configuration for the path filter.
	PathFilterConfig struct {
		Extension       string   `json:"extension" yaml:"extension"`
		IgnoredPatterns []string `json:"ignoredPatterns" yaml:"ignore"`
	}

	// Config is the resolved configuration of a run.
	Config struct {
		Filter    PathFilterConfig
		Gitignore bool
		Format    string
		LogLevel  string
	}
)
