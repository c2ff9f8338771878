package secretbox

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	raw := make([]byte, KeySize)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	return raw
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	box, err := New(testKey(t))
	if err != nil {
		t.Fatalf("New err: %v", err)
	}

	for _, msg := range [][]byte{
		[]byte("hello"),
		{},
		bytes.Repeat([]byte{0xAB}, 1<<16),
	} {
		ct, iv, tag, err := box.Encrypt(msg)
		if err != nil {
			t.Fatalf("Encrypt err: %v", err)
		}
		if len(iv) != NonceSize || len(tag) != TagSize {
			t.Fatalf("bad iv/tag sizes: %d/%d", len(iv), len(tag))
		}
		pt, err := box.Decrypt(ct, iv, tag)
		if err != nil {
			t.Fatalf("Decrypt err: %v", err)
		}
		if !bytes.Equal(pt, msg) {
			t.Fatalf("plaintext mismatch: got %d bytes want %d", len(pt), len(msg))
		}
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	box, _ := New(testKey(t))
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		_, iv, _, err := box.Encrypt([]byte("same plaintext"))
		if err != nil {
			t.Fatalf("Encrypt err: %v", err)
		}
		k := string(iv)
		if seen[k] {
			t.Fatalf("nonce repeated after %d calls", i)
		}
		seen[k] = true
	}
}

func TestDecrypt_DetectsTamper(t *testing.T) {
	box, _ := New(testKey(t))
	ct, iv, tag, err := box.Encrypt([]byte("top secret"))
	if err != nil {
		t.Fatalf("Encrypt err: %v", err)
	}

	flip := func(b []byte, i int) []byte {
		out := append([]byte(nil), b...)
		out[i] ^= 0x01
		return out
	}

	if _, err := box.Decrypt(flip(ct, 0), iv, tag); err != ErrIntegrity {
		t.Fatalf("ciphertext tamper: want ErrIntegrity, got %v", err)
	}
	if _, err := box.Decrypt(ct, iv, flip(tag, TagSize-1)); err != ErrIntegrity {
		t.Fatalf("tag tamper: want ErrIntegrity, got %v", err)
	}
	if _, err := box.Decrypt(ct, flip(iv, 3), tag); err != ErrIntegrity {
		t.Fatalf("iv tamper: want ErrIntegrity, got %v", err)
	}
	if _, err := box.Decrypt(ct, iv[:NonceSize-1], tag); err != ErrIntegrity {
		t.Fatalf("short iv: want ErrIntegrity, got %v", err)
	}
}

func TestKeyFromBase64(t *testing.T) {
	raw := testKey(t)
	got, err := KeyFromBase64(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("std b64: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatal("std b64: key mismatch")
	}

	got, err = KeyFromBase64(base64.RawStdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("raw b64: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatal("raw b64: key mismatch")
	}

	for _, bad := range []string{"", "   ", "short", base64.StdEncoding.EncodeToString(raw[:16])} {
		if _, err := KeyFromBase64(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestNew_RejectsBadKeyLength(t *testing.T) {
	if _, err := New(make([]byte, 16)); err == nil {
		t.Fatal("expected error for 16-byte key")
	}
}
