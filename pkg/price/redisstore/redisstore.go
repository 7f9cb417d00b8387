// Package redisstore persists the price dataset as a Redis list of JSON
// encoded records.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stockdata/pkg/price"
)

var _ price.Store = (*Store)(nil)

// Store keeps the dataset under a single list key, one element per record.
type Store struct {
	client *redis.Client
	key    string
}

// New returns a Store using client and key.
func New(client *redis.Client, key string) *Store {
	return &Store{client: client, key: key}
}

// Load reads the whole list. A missing key is an empty dataset.
func (s *Store) Load(ctx context.Context) (price.Dataset, error) {
	items, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	ds := make(price.Dataset, 0, len(items))
	for i, item := range items {
		var r price.Record
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("%w: decoding %s[%d]: %v", price.ErrStorageUnavailable, s.key, i, err)
		}
		ds = append(ds, r)
	}
	return ds, nil
}

// Save replaces the list in a MULTI/EXEC block.
func (s *Store) Save(ctx context.Context, ds price.Dataset) error {
	values, err := encode(ds)
	if err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.RPush(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	return nil
}

func encode(ds price.Dataset) ([]any, error) {
	values := make([]any, 0, len(ds))
	for _, r := range ds {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		values = append(values, string(b))
	}
	return values, nil
}
