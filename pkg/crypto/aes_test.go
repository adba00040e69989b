package crypto

import (
	"errors"
	"strings"
	"testing"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestKeyFromHex(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		wantErr bool
	}{
		{"valid 32 byte key", testKeyHex, false},
		{"too short", "0001", true},
		{"not hex", strings.Repeat("zz", 32), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := KeyFromHex(tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(key) != 32 {
				t.Errorf("key length = %d", len(key))
			}
		})
	}
}

func TestEncryptDecrypt(t *testing.T) {
	key, err := KeyFromHex(testKeyHex)
	if err != nil {
		t.Fatalf("KeyFromHex() error = %v", err)
	}

	ct1, err := Encrypt(key, "AB1234567")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	ct2, _ := Encrypt(key, "AB1234567")
	if ct1 == ct2 {
		t.Error("two encryptions of the same value must differ (random nonce)")
	}

	pt, err := Decrypt(key, ct1)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if pt != "AB1234567" {
		t.Errorf("Decrypt() = %q", pt)
	}
}

func TestDecrypt_Errors(t *testing.T) {
	key, _ := KeyFromHex(testKeyHex)

	if _, err := Decrypt(key[:16], "x"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("short key: got %v, want ErrInvalidKey", err)
	}
	if _, err := Decrypt(key, "AAAA"); !errors.Is(err, ErrCiphertextTooShort) {
		t.Errorf("short ciphertext: got %v, want ErrCiphertextTooShort", err)
	}

	other, _ := KeyFromHex(strings.Repeat("ff", 32))
	ct, _ := Encrypt(other, "secret")
	if _, err := Decrypt(key, ct); err == nil {
		t.Error("decrypting with the wrong key must fail")
	}
}

func TestGenerateKeyHex(t *testing.T) {
	h, err := GenerateKeyHex()
	if err != nil {
		t.Fatalf("GenerateKeyHex() error = %v", err)
	}
	if _, err := KeyFromHex(h); err != nil {
		t.Errorf("generated key rejected: %v", err)
	}
}
