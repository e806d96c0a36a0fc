package cache

import (
	"strings"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	a := DeriveKey("Shields up", "nova", 1.0, "openai")
	b := DeriveKey("Shields up", "nova", 1.0, "openai")

	if a != b {
		t.Errorf("Key not stable across calls: %s vs %s", a, b)
	}
}

func TestDeriveKey_Format(t *testing.T) {
	key := DeriveKey("Jump complete", "nova", 1.2, "openai")

	if len(key) != 32 {
		t.Fatalf("Key length mismatch: got %d, want 32", len(key))
	}
	for _, r := range key {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("Key contains non-hex character %q: %s", r, key)
		}
	}
}

func TestDeriveKey_EveryFieldMatters(t *testing.T) {
	base := DeriveKey("Understood", "nova", 1.0, "openai")

	variants := map[string]string{
		"text":     DeriveKey("Understood.", "nova", 1.0, "openai"),
		"voice":    DeriveKey("Understood", "onyx", 1.0, "openai"),
		"speed":    DeriveKey("Understood", "nova", 1.25, "openai"),
		"provider": DeriveKey("Understood", "nova", 1.0, "edge-tts"),
	}

	for field, key := range variants {
		if key == base {
			t.Errorf("Changing %s did not change the key", field)
		}
	}
}

func TestDeriveKey_SpeedPrecision(t *testing.T) {
	// Speed is hashed at full precision: speeds too close to tell apart
	// at two decimal places still address separate blobs.
	a := DeriveKey("Understood", "nova", 1.25, "openai")
	b := DeriveKey("Understood", "nova", 1.2501, "openai")

	if a == b {
		t.Errorf("Nearby speeds collapsed into one key: %s", a)
	}

	// Equal values are still equal keys however the literal is written.
	c := DeriveKey("Understood", "nova", 1.0, "openai")
	d := DeriveKey("Understood", "nova", 1.000, "openai")
	if c != d {
		t.Errorf("Equal speeds produced different keys: %s vs %s", c, d)
	}
}

func TestBlobName(t *testing.T) {
	key := DeriveKey("Understood", "nova", 1.0, "openai")
	name := blobName(key)

	if !strings.HasPrefix(name, key) {
		t.Errorf("Blob name %s does not start with key %s", name, key)
	}
	if !strings.HasSuffix(name, blobExt) {
		t.Errorf("Blob name %s missing %s extension", name, blobExt)
	}
}

func BenchmarkDeriveKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		DeriveKey("Frameshift drive charging", "nova", 1.2, "openai")
	}
}
