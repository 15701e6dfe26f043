package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "calcsite"

	// DefaultSiteName is the brand shown in titles and Open Graph tags.
	DefaultSiteName = "Calculadoras Online"

	// DefaultBaseURL is the public origin used for canonical URLs and the sitemap.
	DefaultBaseURL = "https://calculadoras.example.com"

	// DefaultLocale is the Open Graph locale of every page.
	DefaultLocale = "es_ES"

	// DefaultImage is the Open Graph image used when a page has none.
	DefaultImage = "/img/og-default.png"

	// DefaultListenAddr is the address the HTTP server binds to.
	DefaultListenAddr = ":8080"

	// DefaultReadTimeout bounds reading a request, headers included.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultShutdownTimeout is how long in-flight requests may finish on shutdown.
	DefaultShutdownTimeout = 10 * time.Second

	// HistoryMemory keeps calculation history in process memory.
	HistoryMemory = "memory"

	// HistorySQLite persists calculation history to a SQLite database.
	HistorySQLite = "sqlite"

	// DefaultHistoryBackend is the history store used when none is configured.
	DefaultHistoryBackend = HistoryMemory

	// DefaultHistoryLimit is the number of entries kept per calculator.
	DefaultHistoryLimit = 10

	// DefaultRatesTTL is how long fetched exchange rates are cached.
	DefaultRatesTTL = time.Hour

	// DefaultRatesTimeout bounds one exchange rate request.
	DefaultRatesTimeout = 10 * time.Second

	// DefaultOutDir is where static builds are written.
	DefaultOutDir = "dist"

	// DefaultBuildWorkers is the number of pages rendered concurrently.
	DefaultBuildWorkers = 4
)

// Config holds all configuration options of the site.
// It is populated from the config file, environment and CLI flags and then
// passed down explicitly; there is no global configuration state.
type Config struct {
	// SiteName is the brand appended to page titles.
	SiteName string

	// BaseURL is the public origin, without trailing slash.
	BaseURL string

	// Locale is the Open Graph locale (es_ES).
	Locale string

	// DefaultImage is the Open Graph image for pages without one.
	DefaultImage string

	// ListenAddr is the "host:port" the server listens on.
	ListenAddr string

	// ReadTimeout, WriteTimeout and ShutdownTimeout configure the HTTP server.
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// CatalogFile overrides the embedded catalog when set.
	CatalogFile string

	// HistoryBackend selects the history store: memory or sqlite.
	HistoryBackend string

	// DBDir is the directory of the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/calcsite on Linux).
	DBDir string

	// HistoryLimit is the number of entries kept per calculator.
	HistoryLimit int

	// RatesURL is the exchange rate endpoint. When empty, the built-in
	// static table is used.
	RatesURL string

	// RatesTTL is how long a fetched rate table is served.
	RatesTTL time.Duration

	// RatesTimeout bounds one exchange rate request.
	RatesTimeout time.Duration

	// OutDir is the static build output directory.
	OutDir string

	// BuildWorkers is the number of pages rendered concurrently by build.
	BuildWorkers int

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches log output to JSON.
	JSONLog bool

	// JSONReport and MarkdownReport select the catalog report format.
	// They are mutually exclusive; neither means plain text.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile is where the catalog report is written; stdout when empty.
	ReportFile string

	// ConfigFilePath is the config file that was loaded, if any.
	ConfigFilePath string

	// Pages holds per-path SEO overrides loaded from the config file.
	Pages *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		SiteName:        DefaultSiteName,
		BaseURL:         DefaultBaseURL,
		Locale:          DefaultLocale,
		DefaultImage:    DefaultImage,
		ListenAddr:      DefaultListenAddr,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		HistoryBackend:  DefaultHistoryBackend,
		DBDir:           XDGDataDir(),
		HistoryLimit:    DefaultHistoryLimit,
		RatesTTL:        DefaultRatesTTL,
		RatesTimeout:    DefaultRatesTimeout,
		OutDir:          DefaultOutDir,
		BuildWorkers:    DefaultBuildWorkers,
		Pages:           &File{Pages: map[string]PageConfig{}},
	}
}

// XDGDataDir returns the XDG data directory for calcsite.
// On Linux: ~/.local/share/calcsite
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for calcsite.
// On Linux: ~/.config/calcsite
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for calcsite.
// On Linux: ~/.cache/calcsite
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.SiteName == "" {
		return ErrEmptySiteName
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.ListenAddr == "" {
		return ErrInvalidListenAddr
	}

	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 || c.RatesTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.HistoryBackend != HistoryMemory && c.HistoryBackend != HistorySQLite {
		return ErrInvalidHistoryBackend
	}

	if c.HistoryLimit <= 0 {
		return ErrInvalidHistoryLimit
	}

	if c.RatesTTL <= 0 {
		return ErrInvalidRatesTTL
	}

	if c.BuildWorkers <= 0 {
		return ErrInvalidWorkers
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
