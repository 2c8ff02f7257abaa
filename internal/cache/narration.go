// Package cache stores synthesized narration clips in Redis so
// repeated and pre-fetched requests skip the engine cascade. Entries
// are derived data with a TTL; losing them only costs a re-synthesis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnloop/courseai/internal/speech"
)

type NarrationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNarrationCache(client *redis.Client, ttl time.Duration) *NarrationCache {
	return &NarrationCache{client: client, ttl: ttl}
}

type entry struct {
	Audio       []byte `json:"audio"`
	ContentType string `json:"content_type"`
	Engine      string `json:"engine"`
}

func key(text, speaker string) string {
	sum := sha256.Sum256([]byte(speaker + "\x00" + text))
	return "narration:" + hex.EncodeToString(sum[:])
}

// Get returns the cached clip for a text/speaker pair, or false on any
// miss or error. Redis being unreachable degrades to a miss.
func (c *NarrationCache) Get(ctx context.Context, text, speaker string) (*speech.Clip, bool) {
	val, err := c.client.Get(ctx, key(text, speaker)).Bytes()
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(val, &e); err != nil {
		return nil, false
	}
	return &speech.Clip{Audio: e.Audio, ContentType: e.ContentType, Engine: e.Engine}, true
}

// Put stores a clip under the pair's derived key.
func (c *NarrationCache) Put(ctx context.Context, text, speaker string, clip *speech.Clip) error {
	data, err := json.Marshal(entry{
		Audio:       clip.Audio,
		ContentType: clip.ContentType,
		Engine:      clip.Engine,
	})
	if err != nil {
		return fmt.Errorf("marshal clip: %w", err)
	}
	return c.client.Set(ctx, key(text, speaker), data, c.ttl).Err()
}
