// Package outputcache keeps rendered GET responses in Redis and drops them
// by tag when the underlying data changes.
package outputcache

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigFastest

// Entry is one cached response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store keeps entries under prefix and records each key in a per-tag set.
type Store struct {
	client *redis.Client
	prefix string
}

func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) entryKey(key string) string { return s.prefix + "entry:" + key }
func (s *Store) tagKey(tag string) string   { return s.prefix + "tag:" + tag }

// Get returns the entry stored under key. A miss is (nil, false, nil).
func (s *Store) Get(ctx context.Context, key string) (*Entry, bool, error) {
	raw, err := s.client.Get(ctx, s.entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "get cache entry %q", key)
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, errors.Wrapf(err, "decode cache entry %q", key)
	}
	return &e, true, nil
}

// Set stores e for ttl and records key under tag. The tag set lives as
// long as its newest entry.
func (s *Store) Set(ctx context.Context, key, tag string, e *Entry, ttl time.Duration) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return errors.Wrapf(err, "encode cache entry %q", key)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.entryKey(key), raw, ttl)
		pipe.SAdd(ctx, s.tagKey(tag), key)
		pipe.Expire(ctx, s.tagKey(tag), ttl)
		return nil
	})
	return errors.Wrapf(err, "set cache entry %q", key)
}

// EvictByTag deletes every entry recorded under tag, then the tag itself.
func (s *Store) EvictByTag(ctx context.Context, tag string) error {
	keys, err := s.client.SMembers(ctx, s.tagKey(tag)).Result()
	if err != nil {
		return errors.Wrapf(err, "read cache tag %q", tag)
	}

	del := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		del = append(del, s.entryKey(k))
	}
	del = append(del, s.tagKey(tag))
	return errors.Wrapf(s.client.Del(ctx, del...).Err(), "evict cache tag %q", tag)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
