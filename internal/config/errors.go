package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidBaseURL is returned when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base url: must be an absolute http or https url")

	// ErrEmptySiteName is returned when the site name is blank.
	ErrEmptySiteName = errors.New("site name must not be empty")

	// ErrInvalidListenAddr is returned when the listen address is empty.
	ErrInvalidListenAddr = errors.New("invalid listen address")

	// ErrInvalidTimeout is returned when a server or client timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidHistoryBackend is returned for a backend other than memory or sqlite.
	ErrInvalidHistoryBackend = errors.New("invalid history backend: must be memory or sqlite")

	// ErrInvalidHistoryLimit is returned when the history limit is not positive.
	ErrInvalidHistoryLimit = errors.New("invalid history limit: must be positive")

	// ErrInvalidWorkers is returned when the build worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid build workers: must be positive")

	// ErrInvalidRatesTTL is returned when the exchange rate cache lifetime is not positive.
	ErrInvalidRatesTTL = errors.New("invalid rates ttl: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
