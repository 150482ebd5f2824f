// Package config loads the default create options from an optional config
// file and the environment, with explicitly set command-line flags on top.
//
// Precedence, highest first: flags set on the command line, EASY_PYBIND_*
// environment variables, .easy-pybind.yaml, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hyhieu/easy-pybind/internal/planner"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file base name; it is read as YAML.
	FileName = ".easy-pybind"

	// EnvPrefix prefixes every environment override, e.g. EASY_PYBIND_CUDA=true.
	EnvPrefix = "EASY_PYBIND"
)

// Config keys.
const (
	KeyModulePath    = "module_path"
	KeyWithGitignore = "with_gitignore"
	KeyWithPytest    = "with_pytest"
	KeyWithPymain    = "with_pymain"
	KeyCUDA          = "cuda"
)

// Config holds the resolved create options.
type Config struct {
	ModulePath    string `mapstructure:"module_path"`
	WithGitignore bool   `mapstructure:"with_gitignore"`
	WithPytest    bool   `mapstructure:"with_pytest"`
	WithPymain    bool   `mapstructure:"with_pymain"`
	CUDA          bool   `mapstructure:"cuda"`

	// File is the config file that was read, empty if none was found.
	File string `mapstructure:"-"`
}

// Flags converts the feature switches to planner flags.
func (c *Config) Flags() planner.Flags {
	return planner.Flags{
		Accelerator:    c.CUDA,
		IgnoreFile:     c.WithGitignore,
		TestStub:       c.WithPytest,
		DemoEntryPoint: c.WithPymain,
	}
}

// Options controls where Load looks for configuration.
type Options struct {
	// File is an explicit config file. When set, it must exist.
	File string

	// SearchPaths are the directories searched for FileName.yaml when File
	// is empty. Defaults to the working directory and $HOME.
	SearchPaths []string

	// Flags are bound to their config keys; only flags that were changed
	// on the command line override the other sources.
	Flags *pflag.FlagSet
}

// FlagName returns the command-line flag bound to a config key.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyModulePath, ".")
	v.SetDefault(KeyWithGitignore, true)
	v.SetDefault(KeyWithPytest, false)
	v.SetDefault(KeyWithPymain, false)
	v.SetDefault(KeyCUDA, false)

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		searchPaths := opts.SearchPaths
		if searchPaths == nil {
			searchPaths = DefaultSearchPaths()
		}
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for _, key := range []string{KeyModulePath, KeyWithGitignore, KeyWithPytest, KeyWithPymain, KeyCUDA} {
			if f := opts.Flags.Lookup(FlagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", f.Name, err)
				}
			}
			if err := applyNegation(v, opts.Flags, key); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	return cfg, nil
}

// applyNegation honours a --no-<flag> switch for a boolean key.
func applyNegation(v *viper.Viper, flags *pflag.FlagSet, key string) error {
	name := FlagName(key)
	neg := flags.Lookup("no-" + name)
	if neg == nil || !neg.Changed {
		return nil
	}

	if pos := flags.Lookup(name); pos != nil && pos.Changed {
		return fmt.Errorf("--%s and --no-%s cannot be used together", name, name)
	}

	off, err := flags.GetBool("no-" + name)
	if err != nil {
		return err
	}
	if off {
		v.Set(key, false)
	}
	return nil
}

// DefaultSearchPaths returns the working directory and, if known, $HOME.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return paths
}
