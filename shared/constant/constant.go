package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUsername contextKey = "username"
	ContextKeyUserRole contextKey = "user_role"
	ContextKeyTokenID  contextKey = "token_id"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID             = "id"
	RequestParamKey            = "key"
	RequestParamAttending      = "attending"
	RequestParamNeedsTransport = "needs_transport"
	RequestParamSearch         = "search"
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "name"
	DefaultValueSortDir = "ASC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// Settings keys are pre-seeded; Set updates existing rows and never inserts,
// so every key the application reads must exist in the seed migration.
const (
	SettingDefaultTableCapacity = "default_table_capacity"
	SettingEventName            = "event_name"
	SettingEventDate            = "event_date"
)

// DefaultTableCapacity applies when the setting is missing or unparsable.
const DefaultTableCapacity = 10

const (
	DefaultMealType = "normal"

	TableShapeRound  = "round"
	TableShapeSquare = "square"

	// AutoTableNameFormat is the auto-generated table naming scheme; the
	// numeric suffix is one greater than the highest suffix already in use.
	AutoTableNameFormat = "Table %d"
)

// Cache key prefixes live here rather than in the owning services because
// guest writes invalidate table and stats listings and vice versa.
const (
	CacheKeyGuest       = "guest:get"
	CacheKeyGuestList   = "guest:gets"
	CacheKeyGuestCount  = "guest:count"
	CacheKeyTable       = "table:get"
	CacheKeyTableList   = "table:gets"
	CacheKeyStats       = "stats"
	CacheKeySetting     = "setting:get"
	CacheKeySettingList = "setting:gets"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat = time.RFC3339
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
