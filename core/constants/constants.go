package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
)

// Request handling
const (
	DefaultRequestTimeout = 10 * time.Second
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Scheduling defaults. The tunable variants live in config; these are the
// fallbacks when a value is absent.
const (
	DefaultMaxInstances      = 100
	DefaultSlotMinutes       = 30
	DefaultMaxSuggestions    = 5
	DefaultMaxAlternatives   = 3
	DefaultSearchHorizonDays = 60
	DefaultWorkingHoursStart = 8
	DefaultWorkingHoursEnd   = 18
	ExpansionHorizonYears    = 10
	DefaultFreeBusyCacheTTL  = 2 * time.Minute
	DefaultUnknownPenaltyPct = 20.0
	DefaultWorkingHoursBonus = 10
	DefaultConflictFreeBonus = 5
)
