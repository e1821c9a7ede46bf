// Package config resolves run configuration from defaults, an optional
// config file, DIRSTATS_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/taigrr/dirstats/internal/types"
)

// EnvPrefix prefixes environment variables, e.g. DIRSTATS_EXTENSION.
const EnvPrefix = "DIRSTATS"

// Configuration keys.
const (
	KeyExtension = "extension"
	KeyIgnore    = "ignore"
	KeyGitignore = "gitignore"
	KeyFormat    = "format"
	KeyLogLevel  = "log_level"
)

const (
	defaultFormat   = "text"
	defaultLogLevel = "warn"
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyExtension, types.DefaultExtension)
	v.SetDefault(KeyIgnore, []string{})
	v.SetDefault(KeyGitignore, false)
	v.SetDefault(KeyFormat, defaultFormat)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
}

// BindFlags defines the scan flags on flags and binds them to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.StringP("ext", "x", types.DefaultExtension, "Extension of matching source files")
	flags.StringSlice("ignore", nil, "Glob patterns of paths to skip, relative to the root (comma-separated)")
	flags.Bool("gitignore", false, "Skip paths matched by the root .gitignore")
	flags.String("log-level", defaultLogLevel, "Log level: debug, info, warn or error")

	return bind(v, flags, map[string]string{
		KeyExtension: "ext",
		KeyIgnore:    "ignore",
		KeyGitignore: "gitignore",
		KeyLogLevel:  "log-level",
	})
}

// BindOutputFlags defines the report format flag on flags and binds it
// to v.
func BindOutputFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.StringP("format", "o", defaultFormat, "Output format: text, json or yaml")
	return bind(v, flags, map[string]string{KeyFormat: "format"})
}

func bind(v *viper.Viper, flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file and environment into v and returns the
// resolved configuration. With an empty cfgFile, dirstats.yaml is looked
// up in the working directory and then in $HOME/.config; a missing file
// there is not an error.
func Load(v *viper.Viper, cfgFile string) (types.Config, error) {
	if cfgFile == "" {
		cfgFile = findConfigFile()
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return types.Config{
		Filter: types.PathFilterConfig{
			Extension:       v.GetString(KeyExtension),
			IgnoredPatterns: v.GetStringSlice(KeyIgnore),
		},
		Gitignore: v.GetBool(KeyGitignore),
		Format:    v.GetString(KeyFormat),
		LogLevel:  v.GetString(KeyLogLevel),
	}, nil
}

// configNames are looked up when no config file is given. A bare
// "dirstats" file, such as the built binary, never matches.
var configNames = []string{"dirstats.yaml", "dirstats.yml"}

// findConfigFile returns the first config file found in the working
// directory and then in $HOME/.config, or "" if there is none.
func findConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}
	for _, dir := range dirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path
			}
		}
	}
	return ""
}
