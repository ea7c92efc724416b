// Package cache stores rendered artifacts keyed by their inputs.
//
// Rendering is deterministic: the same source image, configuration, seed,
// frame count and output format always produce the same bytes, so finished
// renders can be reused across runs. Three backends implement [Cache]:
//   - [FileCache]: one file per entry under the user cache dir (CLI default)
//   - [RedisCache]: shared cache for multi-instance servers
//   - [MemoryCache]: process-local, used by the HTTP server and tests
//
// [NullCache] disables caching. Keys are built by a [Keyer] so that hosts can
// namespace them with [NewScopedKeyer].
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Keyer builds cache keys.
type Keyer interface {
	// ImageKey identifies a decoded, normalized source image.
	ImageKey(sourceHash string, opts ImageKeyOpts) string

	// RenderKey identifies an encoded render of a source image.
	RenderKey(sourceHash string, opts RenderKeyOpts) string
}

// ImageKeyOpts are the decode parameters that change the normalized image.
type ImageKeyOpts struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RenderKeyOpts are the render parameters that change the output bytes.
// ConfigHash is a hash of the engine configuration.
type RenderKeyOpts struct {
	ConfigHash string  `json:"config_hash"`
	Frames     int     `json:"frames"`
	FPS        float64 `json:"fps"`
	Format     string  `json:"format"`
	Seed       uint64  `json:"seed"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImageKey implements Keyer.
func (DefaultKeyer) ImageKey(sourceHash string, opts ImageKeyOpts) string {
	return hashKey("image", sourceHash, opts)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return hashKey("render", sourceHash, opts)
}

// hashKey returns "prefix:" followed by the SHA-256 of the JSON encoding of
// parts. Struct fields encode in declaration order, so keys are stable.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Source images and configs are
// identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
