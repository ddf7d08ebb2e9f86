package contract

import "errors"

// ErrConversationNotFound is returned when a message targets a conversation that no longer exists.
var ErrConversationNotFound = errors.New("conversation not found")
