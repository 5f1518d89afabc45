package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// RenderKeyOpts holds the render options that change the output.
// Profile is the terminal color profile.
type RenderKeyOpts struct {
	Format  string `json:"format"`
	Style   string `json:"style,omitempty"`
	Width   int    `json:"width,omitempty"`
	Profile int    `json:"profile,omitempty"`
}

// DefaultKeyer generates content-addressed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey returns "render:" followed by a hash of the content hash and
// the options.
func (DefaultKeyer) RenderKey(contentHash string, opts RenderKeyOpts) string {
	return hashKey("render", contentHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
