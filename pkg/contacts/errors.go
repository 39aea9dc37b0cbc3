package contacts

import "errors"

var (
	// ErrSourceNotFound is returned by Open for a name nothing registered.
	// Usually means the backend package was not imported with an underscore.
	ErrSourceNotFound = errors.New("contact source not found")

	// ErrSourceUnavailable wraps failures to reach a source's data. The
	// cache treats it as recoverable and retries on next access.
	ErrSourceUnavailable = errors.New("contact source unavailable")

	// ErrUnknownFormat is returned for contact files whose format cannot be
	// detected from the extension or the configured format name.
	ErrUnknownFormat = errors.New("unknown contact file format")

	// ErrInvalidConfig is returned by a factory handed the wrong config type.
	ErrInvalidConfig = errors.New("invalid contact source config")
)
