// Package memory is the in-process backend used when STORE_DRIVER=memory and by
// service tests. Records live in go-cache without expiration.
package memory

import (
	"errors"
	"sync"

	"llm-chat-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type Store struct {
	mu  sync.RWMutex
	seq uint64

	users         *cache.Cache
	conversations *cache.Cache
	messages      *cache.Cache
	apiKeys       *cache.Cache
}

func NewStore() *Store {
	return &Store{
		users:         cache.New(cache.NoExpiration, 0),
		conversations: cache.New(cache.NoExpiration, 0),
		messages:      cache.New(cache.NoExpiration, 0),
		apiKeys:       cache.New(cache.NoExpiration, 0),
	}
}

// next must be called with mu held for writing.
func (s *Store) next() uint64 {
	s.seq++
	return s.seq
}

// Records carry the insertion sequence, used as a tiebreak when timestamps collide.

type conversationRecord struct {
	seq   uint64
	value entity.Conversation
}

type messageRecord struct {
	seq   uint64
	value entity.Message
}

type apiKeyRecord struct {
	seq   uint64
	value entity.ApiKey
}

func copyConversation(c entity.Conversation) *entity.Conversation {
	if c.UserId != nil {
		id := *c.UserId
		c.UserId = &id
	}
	return &c
}

func copyMessage(m entity.Message) *entity.Message {
	if m.Metadata.Images != nil {
		m.Metadata.Images = append([]string(nil), m.Metadata.Images...)
	}
	if m.Metadata.Attachments != nil {
		m.Metadata.Attachments = append([]entity.Attachment(nil), m.Metadata.Attachments...)
	}
	if m.Metadata.Usage != nil {
		usage := *m.Metadata.Usage
		m.Metadata.Usage = &usage
	}
	return &m
}

func copyApiKey(k entity.ApiKey) *entity.ApiKey {
	return &k
}

var (
	errTxStarted = errors.New("transaction already started")
	errNoTx      = errors.New("no transaction in progress")
)
