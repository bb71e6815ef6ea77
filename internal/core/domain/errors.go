package domain

import "go.trai.ch/zerr"

var (
	// ErrInvariantViolation is returned when a caller breaks a precondition of the config API,
	// such as requesting a file-create invalidation with no recognised variant populated.
	ErrInvariantViolation = zerr.New("invariant violation")

	// ErrConfigReadFailed is returned when a located config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a located config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrOptionsLoadFailed is returned when the cfgtrack.yaml options file cannot be loaded.
	ErrOptionsLoadFailed = zerr.New("failed to load build options")

	// ErrInvalidMode is returned when the build mode is neither development nor production.
	ErrInvalidMode = zerr.New("invalid mode, expected 'development' or 'production'")

	// ErrNoFileNames is returned when a resolve request names no candidate files and no package key.
	ErrNoFileNames = zerr.New("no config file names specified")

	// ErrRecordNotFound is returned when no snapshot is stored for a record key.
	ErrRecordNotFound = zerr.New("config record not found")

	// ErrStoreCreateFailed is returned when the record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create record store directory")

	// ErrStoreReadFailed is returned when a record snapshot cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read record snapshot")

	// ErrStoreUnmarshalFailed is returned when a record snapshot cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal record snapshot")

	// ErrStoreMarshalFailed is returned when a record snapshot cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal record snapshot")

	// ErrStoreWriteFailed is returned when a record snapshot cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write record snapshot")
)
