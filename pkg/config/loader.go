package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/paths"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "PHOTOSNAP_"

// LoadOptions selects the optional layers of Load
type LoadOptions struct {
	// ConfigFile must exist when set. When empty the XDG config file is
	// used if present.
	ConfigFile string
	// Flags holds explicitly set flags keyed by config key
	Flags map[string]interface{}
}

// Load builds the configuration from, lowest first: embedded defaults,
// the config file, PHOTOSNAP_* environment variables and flags.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. Config file
	path, err := configFilePath(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().Object("config", &cfg).Msg("configuration resolved")
	return &cfg, nil
}

// envKey maps PHOTOSNAP_LIBRARY__ROOT to library.root
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func configFilePath(explicit string) (string, error) {
	if explicit != "" {
		explicit, err := paths.NormalizePath(explicit)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrConfigLoad, "invalid config file path")
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", explicit)
		}
		return explicit, nil
	}
	path := paths.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

func postProcessConfig(cfg *Config) error {
	cfg.MediaTypes = strings.ToUpper(strings.TrimSpace(cfg.MediaTypes))
	if cfg.FetchLimit < 0 {
		return errors.Newf(errors.ErrConfigParse, "fetch_limit must not be negative, got %d", cfg.FetchLimit)
	}
	if cfg.Library.HTTPTimeout < 0 {
		return errors.Newf(errors.ErrConfigParse, "library.http_timeout must not be negative, got %s", cfg.Library.HTTPTimeout)
	}
	if strings.TrimSpace(cfg.DateFormat) == "" {
		return errors.New(errors.ErrConfigParse, "date_format must not be empty")
	}
	if cfg.Verify.ScratchDir == "" {
		cfg.Verify.ScratchDir = paths.ScratchDir()
	}
	for _, dir := range []*string{&cfg.Library.Root, &cfg.Verify.ScratchDir} {
		if *dir == "" {
			continue
		}
		normalized, err := paths.NormalizePath(*dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "invalid path %q", *dir)
		}
		*dir = normalized
	}
	return nil
}
