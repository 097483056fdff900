// File: services/assistant/transcript.go
package assistant

import (
	"context"
	"encoding/json"
	"time"

	"skybook/models"

	"github.com/go-redis/redis/v8"
)

const transcriptPrefix = "chat:transcript:"

// RedisTranscriptStore keeps each session's message log as a JSON blob
// with a sliding TTL, so an idle conversation eventually expires.
type RedisTranscriptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTranscriptStore(client *redis.Client, ttl time.Duration) *RedisTranscriptStore {
	return &RedisTranscriptStore{client: client, ttl: ttl}
}

func (s *RedisTranscriptStore) Append(ctx context.Context, sessionID string, msgs ...models.ChatMessage) error {
	history, err := s.History(ctx, sessionID)
	if err != nil {
		return err
	}
	history = append(history, msgs...)
	return s.write(ctx, sessionID, history)
}

func (s *RedisTranscriptStore) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	key := transcriptPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *RedisTranscriptStore) Reset(ctx context.Context, sessionID string, greeting models.ChatMessage) error {
	return s.write(ctx, sessionID, []models.ChatMessage{greeting})
}

func (s *RedisTranscriptStore) write(ctx context.Context, sessionID string, history []models.ChatMessage) error {
	key := transcriptPrefix + sessionID
	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}
