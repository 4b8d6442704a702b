package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Strict decoding rejects non-zero trailing bits, so each signature has exactly one encoding.
var b64 = base64.RawURLEncoding.Strict()

type compactPayload struct {
	SubjectID string `json:"subjectId"`
	Email     string `json:"email"`
	Exp       int64  `json:"exp"`
}

// Issue returns a compact token for subjectID and email that expires ttl after now.
// A negative ttl yields a token that is already expired.
func Issue(subjectID, email string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrSecretMissing
	}

	raw, err := json.Marshal(compactPayload{
		SubjectID: subjectID,
		Email:     email,
		Exp:       now.Add(ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	payload := b64.EncodeToString(raw)
	return payload + "." + b64.EncodeToString(sign(payload, secret)), nil
}

// Verify checks a compact token against secret at now.
//
// Order matters: the signature is checked before the payload is decoded, so
// unauthenticated bytes are never parsed.
func Verify(token string, secret []byte, now time.Time) (Claims, error) {
	// An empty key would verify anything signed with an empty key.
	if len(secret) == 0 {
		return Claims{}, ErrBadSignature
	}

	payload, sig, ok := split(token)
	if !ok {
		return Claims{}, ErrMalformed
	}

	got, err := b64.DecodeString(sig)
	if err != nil {
		return Claims{}, ErrBadSignature
	}
	want := sign(payload, secret)
	if len(got) != len(want) || subtle.ConstantTimeCompare(got, want) != 1 {
		return Claims{}, ErrBadSignature
	}

	raw, err := b64.DecodeString(payload)
	if err != nil {
		return Claims{}, ErrMalformedPayload
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Claims{}, ErrMalformedPayload
	}

	var p compactPayload
	if !claim(fields, "subjectId", &p.SubjectID) ||
		!claim(fields, "email", &p.Email) ||
		!claim(fields, "exp", &p.Exp) ||
		p.SubjectID == "" {
		return Claims{}, ErrMissingClaims
	}

	// No leeway: a token is live through its exp second and dead after it.
	if p.Exp < now.Unix() {
		return Claims{}, ErrExpired
	}

	return Claims{SubjectID: p.SubjectID, Email: p.Email}, nil
}

// split accepts exactly two non-empty dot-separated segments.
func split(token string) (string, string, bool) {
	payload, sig, found := strings.Cut(token, ".")
	if !found || payload == "" || sig == "" || strings.Contains(sig, ".") {
		return "", "", false
	}
	return payload, sig, true
}

func sign(payload string, secret []byte) []byte {
	m := hmac.New(sha256.New, secret)
	_, _ = m.Write([]byte(payload))
	return m.Sum(nil)
}

// claim decodes fields[name] into dst. JSON null and type mismatches count as absent.
func claim(fields map[string]json.RawMessage, name string, dst any) bool {
	v, ok := fields[name]
	if !ok || string(v) == "null" {
		return false
	}
	return json.Unmarshal(v, dst) == nil
}

// HMACCodec is the compact HMAC-SHA256 profile bound to one secret.
type HMACCodec struct {
	secret []byte
}

// NewHMACCodec returns a compact codec. The secret is copied.
func NewHMACCodec(secret []byte) (*HMACCodec, error) {
	if len(secret) == 0 {
		return nil, ErrSecretMissing
	}
	return &HMACCodec{secret: append([]byte(nil), secret...)}, nil
}

// Issue implements Codec.
func (c *HMACCodec) Issue(subjectID, email string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	tok, err := Issue(subjectID, email, c.secret, ttl, now)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, time.Unix(now.Add(ttl).Unix(), 0).UTC(), nil
}

// Verify implements Codec.
func (c *HMACCodec) Verify(token string, now time.Time) (Claims, error) {
	return Verify(token, c.secret, now)
}
