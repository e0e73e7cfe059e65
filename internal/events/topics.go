package events

// Topic constants for domain events emitted by the shop.
const (
	TopicOrderCreated = "order.created"
)
