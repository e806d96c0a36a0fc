package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
)

// DeriveKey returns the cache key for a synthesis request. The key is a
// fixed-width digest of the full request tuple: identical inputs always map
// to the same key across processes and restarts, and a change to any single
// field produces a different key. Speed is rendered at full precision so
// distinct speeds can never share a key. The key also names the blob file
// on disk, so stability is a correctness requirement, not an optimization.
func DeriveKey(text, voice string, speed float64, provider string) string {
	tuple := fmt.Sprintf("%s|%s|%s|%s",
		text, voice, strconv.FormatFloat(speed, 'g', -1, 64), provider)
	sum := md5.Sum([]byte(tuple))
	return hex.EncodeToString(sum[:])
}

// blobName returns the file name holding the raw audio for key.
func blobName(key string) string {
	return key + blobExt
}
