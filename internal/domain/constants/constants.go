// Package constants holds shared domain-level constant values.
package constants

const (
	// EnvDevelop is the development environment name.
	EnvDevelop = "develop"
	// EnvProduction is the production environment name.
	EnvProduction = "production"
)

const (
	// PubSubProviderLocal publishes events over plain HTTP for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// PropertiesCollection is the document-store collection holding properties.
	PropertiesCollection = "properties"
	// UsersCollection is the document-store collection holding user profiles,
	// keyed by lowercased email.
	UsersCollection = "users"
)
