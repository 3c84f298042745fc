package catalog

import "time"

// Cache tuning. Definitions change only on redeploy, so a short TTL is
// plenty to keep the DB out of the hot path.
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// Error context messages
const (
	ErrMsgReadConfigFailed  = "failed to read case config %s: %w"
	ErrMsgParseConfigFailed = "failed to parse case config %s: %w"
)

// Log messages
const (
	LogMsgContentLoaded = "Case content loaded"
	LogMsgContentSynced = "Case content synced to database"
)
