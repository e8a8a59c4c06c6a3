package codec

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	plain := []byte(`{"tasks":[{"id":1,"text":"Water plants (10)"}]}`)
	enc := Encode(plain)
	if !strings.HasPrefix(enc, "x1:") {
		t.Fatalf("encoded payload missing version prefix: %q", enc)
	}
	if strings.Contains(enc, "Water") {
		t.Fatal("plaintext visible in encoded payload")
	}
	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("round trip mismatch: got %q", got)
	}
}

func TestDecodeLegacyBase64(t *testing.T) {
	plain := []byte(`{"lastSynced":0}`)
	got, err := Decode(base64.StdEncoding.EncodeToString(plain))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("got %q, want %q", got, plain)
	}
}

func TestDecodeRawJSON(t *testing.T) {
	plain := `{"tasks":[]}`
	got, err := Decode(plain)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(got) != plain {
		t.Fatalf("got %q, want %q", got, plain)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	for _, payload := range []string{"", "x1:zzzz", "not json and not base64!!"} {
		if _, err := Decode(payload); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", payload)
		}
	}
}
