// Package codec obfuscates snapshot payloads at rest and on the wire. The
// current format XORs the plaintext with a fixed key and hex-encodes the
// result under an "x1:" version prefix. This is obfuscation against casual
// inspection of the blob, not cryptography.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

const prefix = "x1:"

var key = []byte("DECK-OS-2025-SEC")

// ErrCorrupt is returned when a payload matches no known format.
var ErrCorrupt = errors.New("codec: unrecognized payload")

func xor(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

// Encode wraps plaintext in the current versioned format.
func Encode(plain []byte) string {
	return prefix + hex.EncodeToString(xor(plain))
}

// Decode recovers plaintext from any format ever written: the current
// prefixed form, the legacy base64 form, or plain JSON from before any
// encoding existed.
func Decode(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrCorrupt
	}

	if strings.HasPrefix(payload, prefix) {
		raw, err := hex.DecodeString(payload[len(prefix):])
		if err != nil {
			return nil, ErrCorrupt
		}
		return xor(raw), nil
	}

	if raw, err := base64.StdEncoding.DecodeString(payload); err == nil && json.Valid(raw) {
		return raw, nil
	}

	if json.Valid([]byte(payload)) {
		return []byte(payload), nil
	}

	return nil, ErrCorrupt
}
