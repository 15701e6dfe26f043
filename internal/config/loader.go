package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfigFile is the configuration file name searched in the current
// and home directories.
const DefaultConfigFile = ".calcsite.yaml"

// xdgConfigFile is the file name searched in the XDG config directory.
const xdgConfigFile = "config.yaml"

// EnvPrefix prefixes every environment override (CALCSITE_SITE_BASE_URL).
const EnvPrefix = "CALCSITE"

// ErrConfigNotFound is returned when an explicitly given file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Configuration keys.
const (
	keySiteName        = "site.name"
	keyBaseURL         = "site.base_url"
	keyLocale          = "site.locale"
	keyDefaultImage    = "site.default_image"
	keyListen          = "server.listen"
	keyReadTimeout     = "server.read_timeout"
	keyWriteTimeout    = "server.write_timeout"
	keyShutdownTimeout = "server.shutdown_timeout"
	keyCatalogFile     = "catalog_file"
	keyHistoryBackend  = "history.backend"
	keyHistoryDir      = "history.dir"
	keyHistoryLimit    = "history.limit"
	keyRatesURL        = "rates.url"
	keyRatesTTL        = "rates.ttl"
	keyRatesTimeout    = "rates.timeout"
	keyOutDir          = "build.out_dir"
	keyBuildWorkers    = "build.workers"
	keyLogJSON         = "log.json"
	keyPages           = "pages"
	keyPageDefaults    = "page_defaults"
)

// Load builds a Config from defaults, the configuration file and the
// environment. When configPath is empty the file is searched with
// FindConfigFile and a missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := FindConfigFile(configPath)
	if configPath != "" && file == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = file
	return cfg, nil
}

// setDefaults registers every key so that AutomaticEnv sees it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault(keySiteName, d.SiteName)
	v.SetDefault(keyBaseURL, d.BaseURL)
	v.SetDefault(keyLocale, d.Locale)
	v.SetDefault(keyDefaultImage, d.DefaultImage)
	v.SetDefault(keyListen, d.ListenAddr)
	v.SetDefault(keyReadTimeout, d.ReadTimeout)
	v.SetDefault(keyWriteTimeout, d.WriteTimeout)
	v.SetDefault(keyShutdownTimeout, d.ShutdownTimeout)
	v.SetDefault(keyCatalogFile, d.CatalogFile)
	v.SetDefault(keyHistoryBackend, d.HistoryBackend)
	v.SetDefault(keyHistoryDir, d.DBDir)
	v.SetDefault(keyHistoryLimit, d.HistoryLimit)
	v.SetDefault(keyRatesURL, d.RatesURL)
	v.SetDefault(keyRatesTTL, d.RatesTTL)
	v.SetDefault(keyRatesTimeout, d.RatesTimeout)
	v.SetDefault(keyOutDir, d.OutDir)
	v.SetDefault(keyBuildWorkers, d.BuildWorkers)
	v.SetDefault(keyLogJSON, d.JSONLog)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		SiteName:        v.GetString(keySiteName),
		BaseURL:         strings.TrimRight(v.GetString(keyBaseURL), "/"),
		Locale:          v.GetString(keyLocale),
		DefaultImage:    v.GetString(keyDefaultImage),
		ListenAddr:      v.GetString(keyListen),
		ReadTimeout:     v.GetDuration(keyReadTimeout),
		WriteTimeout:    v.GetDuration(keyWriteTimeout),
		ShutdownTimeout: v.GetDuration(keyShutdownTimeout),
		CatalogFile:     v.GetString(keyCatalogFile),
		HistoryBackend:  strings.ToLower(v.GetString(keyHistoryBackend)),
		DBDir:           v.GetString(keyHistoryDir),
		HistoryLimit:    v.GetInt(keyHistoryLimit),
		RatesURL:        v.GetString(keyRatesURL),
		RatesTTL:        v.GetDuration(keyRatesTTL),
		RatesTimeout:    v.GetDuration(keyRatesTimeout),
		OutDir:          v.GetString(keyOutDir),
		BuildWorkers:    v.GetInt(keyBuildWorkers),
		JSONLog:         v.GetBool(keyLogJSON),
		Pages:           &File{Pages: map[string]PageConfig{}},
	}

	if v.IsSet(keyPages) {
		if err := v.UnmarshalKey(keyPages, &cfg.Pages.Pages); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", keyPages, err)
		}
	}
	if v.IsSet(keyPageDefaults) {
		if err := v.UnmarshalKey(keyPageDefaults, &cfg.Pages.Defaults); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", keyPageDefaults, err)
		}
	}
	return cfg, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, if given
//  2. .calcsite.yaml in the current directory
//  3. config.yaml in the XDG config directory
//  4. .calcsite.yaml in the user's home directory
//
// It returns an empty string when no file is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
