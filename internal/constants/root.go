package constants

// SessionState represents the current view of the TUI application
type SessionState int

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	AppName            = "rihla"
	DefaultKeyringUser = "database-connection"
	GeminiKeyringUser  = "gemini-api-key"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Snapshot names
	LedgerSnapshot   = "ledger"
	SettingsSnapshot = "settings"

	// Custom recitation ids are prefixed so they never collide with catalog ids
	CustomItemPrefix = "custom-"

	// Challenge provider defaults
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultAPIKeyEnv   = "GEMINI_API_KEY"
	DefaultDBConnEnv   = "RIHLA_DB_CONNECTION"
	InspirationTemp    = 0.7

	// Notify constants
	NotifierLockfileName   = "rihla-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.rihla"
	TrayExecutablePrefix   = "rihla-tray"

	// Conflict Types
	ConflictNegativePoints   ConflictType = "negative_points"
	ConflictLevelDrift       ConflictType = "level_drift"
	ConflictInvalidUnits     ConflictType = "invalid_units"
	ConflictMissingOrderID   ConflictType = "missing_order_id"
	ConflictStaleOrderID     ConflictType = "stale_order_id"
	ConflictDuplicateOrderID ConflictType = "duplicate_order_id"
	ConflictStaleSelectedID  ConflictType = "stale_selected_id"
	ConflictUnknownSound     ConflictType = "unknown_sound"
	ConflictUnknownReminder  ConflictType = "unknown_reminder"
	ConflictInvalidTime      ConflictType = "invalid_time"
)

// Session States
const (
	StateHome SessionState = iota
	StateGuide
	StateJourney
	StateSettings
	StateAddItem
	StateEditReminder
	StateConfirmDelete
)
