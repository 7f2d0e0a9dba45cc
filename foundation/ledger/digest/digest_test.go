package digest_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/digest"
)

func TestHash(t *testing.T) {
	h1 := digest.Hash([]byte("hello"))
	h2 := digest.Hash([]byte("hello"))
	h3 := digest.Hash([]byte("hello!"))

	if len(h1) != 64 {
		t.Fatalf("hash should be 64 hex characters, got %d", len(h1))
	}

	if h1 != h2 {
		t.Errorf("hashing the same bytes should be deterministic")
	}

	if h1 == h3 {
		t.Errorf("different inputs should not collide")
	}

	for _, c := range h1 {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("hash should be lowercase hex, got %q", h1)
		}
	}
}
