package constants

// Exchanges
const (
	ExchangeNotifications     = "urban_valle.notifications"
	ExchangeNotificationsType = "topic"
)

// Routing keys
const (
	RoutingKeyContactCreated = "contact.created"
)

// Event contracts
const (
	EventContactCreated        = "ContactCreated"
	EventContactCreatedVersion = "1.0.0"
)
