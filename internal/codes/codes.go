package codes

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
)

// Generate returns a fresh opaque authorization code: 32 bytes from
// crypto/rand, base64url without padding (256 bits of entropy, well above
// the 128-bit floor).
func Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating authorization code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// FromConfig builds the configured code store backend. The raw map is the
// inline remainder of the code_store config block.
func FromConfig(ctx context.Context, storeType string, raw map[string]any) (core.CodeStore, error) {
	switch storeType {
	case TypeMemory, "":
		return NewMemoryStore(), nil
	case TypeRedis:
		var conf RedisConfig
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Metadata: nil,
			Result:   &conf,
		})
		if err != nil {
			return nil, fmt.Errorf("creating decoder for redis code store: %w", err)
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("decoding redis code store config: %w", err)
		}
		return NewRedisStore(ctx, conf)
	default:
		return nil, fmt.Errorf("unknown code store type %q", storeType)
	}
}
