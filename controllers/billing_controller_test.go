package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"subscription.created","data":{"user_id":7}}`)
	secret := "whsec_test"

	if !verifySignature(body, sign(body, secret), secret) {
		t.Fatal("valid signature rejected")
	}
	if !verifySignature(body, "  "+sign(body, secret)+" ", secret) {
		t.Fatal("signature with surrounding whitespace rejected")
	}
}

func TestPayloadDigest(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)

	got := payloadDigest(body)
	if len(got) != 64 {
		t.Fatalf("digest length = %d, want 64 hex chars", len(got))
	}
	if got != payloadDigest(body) {
		t.Fatal("digest must be deterministic for the same body")
	}
	if got == payloadDigest([]byte(`{"id":"evt_2"}`)) {
		t.Fatal("different bodies must not share a digest")
	}
}

func TestVerifySignatureRejects(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"

	cases := []struct {
		name      string
		body      []byte
		signature string
		secret    string
	}{
		{"wrong secret", body, sign(body, "other"), secret},
		{"tampered body", []byte(`{"id":"evt_2"}`), sign(body, secret), secret},
		{"empty signature", body, "", secret},
		{"empty secret", body, sign(body, secret), ""},
		{"garbage signature", body, "deadbeef", secret},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if verifySignature(tc.body, tc.signature, tc.secret) {
				t.Fatal("invalid signature accepted")
			}
		})
	}
}
