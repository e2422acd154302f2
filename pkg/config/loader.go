package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/logging"
)

// envPrefix is the prefix for environment variable overrides. Double
// underscores separate nesting levels so that keys containing single
// underscores (output_dir, include_groups) stay addressable.
const envPrefix = "TREESMITH_"

// configFileNames are the file names probed in the workspace root, in
// order. The first one that exists wins.
var configFileNames = []string{".treesmith.toml", "treesmith.toml"}

// Load builds the merged configuration for a workspace:
// built-in defaults, then the workspace treesmith.toml, then
// TREESMITH_* environment variables.
func Load(workspaceRoot string) (*Config, error) {
	return LoadWithOverrides(workspaceRoot, nil)
}

// LoadWithOverrides builds the workspace configuration like Load and
// applies programmatic overrides last. The CLI routes flag values
// through here so they win over files and environment.
func LoadWithOverrides(workspaceRoot string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	// 2. Workspace config file
	configPath := findConfigFile(workspaceRoot)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", configPath)
		}
		logger.Debug().Str("path", configPath).Msg("Loaded workspace config")
	} else {
		logger.Debug().Str("root", workspaceRoot).Msg("No workspace config file found")
	}

	// 3. Environment overrides
	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	return finish(k, overrides)
}

// LoadFile loads a single configuration file without probing, for tests
// and for explicit --config usage.
func LoadFile(path string) (*Config, error) {
	return LoadFileWithOverrides(path, nil)
}

// LoadFileWithOverrides is LoadFile plus programmatic overrides.
func LoadFileWithOverrides(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	return finish(k, overrides)
}

// finish applies overrides, decodes and validates the merged tree.
func finish(k *koanf.Koanf, overrides map[string]interface{}) (*Config, error) {
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file in the workspace
// root, or empty when none exists.
func findConfigFile(workspaceRoot string) string {
	for _, name := range configFileNames {
		path := filepath.Join(workspaceRoot, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envToKey maps TREESMITH_OUTPUT_DIR to "output_dir" and
// TREESMITH_DIRS__KERNEL__ENABLE to "dirs.kernel.enable".
func envToKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// unmarshal decodes the merged koanf tree into a Config.
func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := Default()
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return cfg, nil
}
