package constant

const (
	// Watermill topic carrying dto.ExchangeCompletedEvent payloads.
	ExchangeCompletedTopic = "exchange.completed"
	// NATS subject the same events are forwarded to when NATS_URL is set.
	ExchangeCompletedSubject = "chat.exchange.completed"

	DefaultConversationTitle = "New Chat"

	// AttachmentHeader prefixes attachment text appended to a user turn.
	AttachmentHeader = "\n\n[Attachment: %s]\n"
)
