package redis

import "fmt"

const defaultKeyPrefix = "gamehub"

// entryKey returns the Redis key for a storage entry
func (s *Storage) entryKey(key string) string {
	prefix := s.cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return fmt.Sprintf("%s:kv:%s", prefix, key)
}
