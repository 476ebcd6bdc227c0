package analysiscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
)

// ValkeyCache persists garment analysis results in a Valkey-compatible
// database so repeated uploads of the same image skip re-analysis across
// server restarts.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "analysis"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

// GetGarment returns a cached analysis when present.
func (c *ValkeyCache) GetGarment(ctx context.Context, key string) (closet.GarmentAnalysis, bool, error) {
	cmd := c.client.B().Get().Key(c.garmentKey(key)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return closet.GarmentAnalysis{}, false, nil
		}
		return closet.GarmentAnalysis{}, false, err
	}
	var analysis closet.GarmentAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return closet.GarmentAnalysis{}, false, err
	}
	return analysis, true, nil
}

// SaveGarment stores an analysis with the given ttl.
func (c *ValkeyCache) SaveGarment(ctx context.Context, key string, analysis closet.GarmentAnalysis, ttl time.Duration) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.garmentKey(key)).Value(string(payload))
	if ttl > 0 {
		return c.client.Do(ctx, builder.Ex(ttl).Build()).Error()
	}
	return c.client.Do(ctx, builder.Build()).Error()
}

func (c *ValkeyCache) garmentKey(key string) string {
	return c.prefix + ":garment:" + key
}

var _ closet.AnalysisCache = (*ValkeyCache)(nil)
