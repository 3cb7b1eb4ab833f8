// Package constants contains configuration values shared across layers.
package constants

// Environments.
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Event transport providers.
const (
	PubSubProviderNoop     = "noop"
	PubSubProviderLocal    = "local"
	PubSubProviderGoogle   = "google"
	PubSubProviderRabbitMQ = "rabbitmq"
)

// Notification delivery providers.
const (
	NotificationProviderLog    = "log"
	NotificationProviderEvents = "events"
)

// SessionCookieName is used when auth.cookieName is not configured.
const SessionCookieName = "session"
