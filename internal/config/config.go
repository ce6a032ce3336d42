// Package config resolves classgen settings from defaults, a classgen.yaml
// file, a .env file, CLASSGEN_* environment variables and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/example/classgen/internal/errors"
)

// Defaults
const (
	DefaultOutputDir = "output"
	DefaultBaseDir   = "."
	DefaultFormatter = "clang-format"
	DefaultCompiler  = "clang++ -std=c++14 -Wall -Wextra -c"
	EnvPrefix        = "CLASSGEN_"
	DefaultEnvFile   = ".env"
)

// ConfigFileNames are searched, in order, in every directory on the way up.
var ConfigFileNames = []string{"classgen.yaml", "classgen.yml"}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps command-line flag names to settings keys. Flags not listed
// here are spec values, not settings.
var flagKeys = map[string]string{
	"output-dir":    "output_dir",
	"base-dir":      "base_dir",
	"clang-format":  "format_style",
	"compile-check": "compile_check",
	"syntax-check":  "syntax_check",
	"strict":        "strict",
	"debug":         "debug",
	"log-json":      "log_json",
}

// pathKeys are resolved against the directory of the file that set them.
var pathKeys = []string{"output_dir", "base_dir"}

// Settings is the resolved, immutable configuration of one run.
type Settings struct {
	OutputDir    string `koanf:"output_dir"`
	BaseDir      string `koanf:"base_dir"`
	Style        string `koanf:"format_style"`
	Formatter    string `koanf:"formatter"`
	Compiler     string `koanf:"compiler"`
	CompileCheck bool   `koanf:"compile_check"`
	SyntaxCheck  bool   `koanf:"syntax_check"`
	Strict       bool   `koanf:"strict"`
	Debug        bool   `koanf:"debug"`
	LogJSON      bool   `koanf:"log_json"`

	// FormatStyle is nil when formatting is off or the style is unknown.
	FormatStyle *Style `koanf:"-"`

	// ConfigFile is the settings file that was loaded, if any.
	ConfigFile string `koanf:"-"`

	// Warnings collects non-fatal problems found while resolving.
	Warnings []string `koanf:"-"`
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	ConfigFile string         // explicit --config; skips the upward search
	Dir        string         // search start; defaults to the working directory
	EnvFile    string         // defaults to .env in Dir
	Flags      *pflag.FlagSet // only changed flags are applied
}

// Load resolves settings. Precedence (highest to lowest):
// flags > environment (.env included) > settings file > defaults.
func Load(opts LoadOptions) (*Settings, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output_dir":    DefaultOutputDir,
		"base_dir":      DefaultBaseDir,
		"format_style":  "",
		"formatter":     DefaultFormatter,
		"compiler":      DefaultCompiler,
		"compile_check": false,
		"syntax_check":  false,
		"strict":        false,
		"debug":         false,
		"log_json":      false,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	// 2. Settings file
	cfgFile := opts.ConfigFile
	if cfgFile == "" {
		cfgFile = findConfigFileUpward(dir)
	} else if _, err := os.Stat(cfgFile); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "config file %s", cfgFile),
			"run 'classgen init' to create one",
		)
	}
	if cfgFile != "" {
		if err := loadFile(k, cfgFile); err != nil {
			return nil, err
		}
	}

	// 3. .env, then CLASSGEN_* environment
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = filepath.Join(dir, DefaultEnvFile)
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", envFile)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	// 4. Changed flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	// 5. Unmarshal
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}
	s.ConfigFile = cfgFile

	if s.OutputDir == "" {
		return nil, errors.WithHint(errors.New("output_dir is empty"), "set output_dir in classgen.yaml or pass --output-dir")
	}
	if s.BaseDir == "" {
		s.BaseDir = DefaultBaseDir
	}

	if s.Style != "" {
		style, err := ParseStyle(s.Style)
		if err != nil {
			s.Warnings = append(s.Warnings, err.Error()+"; formatting disabled")
		} else {
			s.FormatStyle = &style
		}
	}

	return &s, nil
}

// loadFile loads a settings file into its own koanf instance so relative
// paths can be anchored at the file's directory before merging.
func loadFile(k *koanf.Koanf, path string) error {
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
		return errors.Wrapf(err, "error reading config file %s", path)
	}

	base := filepath.Dir(path)
	for _, key := range pathKeys {
		if !fk.Exists(key) {
			continue
		}
		if err := fk.Set(key, resolvePathRelativeTo(fk.String(key), base)); err != nil {
			return errors.Wrapf(err, "failed to resolve %s", key)
		}
	}

	return k.Merge(fk)
}

func findConfigFileUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
