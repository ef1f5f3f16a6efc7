package resultcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/cropsense/leafscan/internal/domain/detection"
)

// ValkeyStore caches parsed detection results in a Valkey-compatible database
// so identical image+crop submissions skip the vision model.
type ValkeyStore struct {
	client valkey.Client
}

// NewValkeyStore constructs a cache backed by Valkey.
func NewValkeyStore(client valkey.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

// Get returns the cached result for key, if present.
func (s *ValkeyStore) Get(ctx context.Context, key string) (detection.Result, bool, error) {
	cmd := s.client.B().Get().Key(key).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return detection.Result{}, false, nil
		}
		return detection.Result{}, false, err
	}
	var result detection.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return detection.Result{}, false, err
	}
	return result, true, nil
}

// Set stores the result under key with the given TTL.
func (s *ValkeyStore) Set(ctx context.Context, key string, result detection.Result, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

var _ detection.ResultCache = (*ValkeyStore)(nil)
