package doorkeep

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// CookieSigner signs small opaque string values for transport in cookies so
// the server can detect client-side tampering without any server-side
// session storage. Values are integrity-protected, not encrypted: callers
// must never place secrets in the value itself.
//
// The transport format is base64url(HMAC-SHA256(value)) + "." + value. The
// tag alphabet contains no dot, so the first dot always separates tag from
// value and the value may itself contain dots.
type CookieSigner struct {
	secret []byte
}

func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{secret: []byte(secret)}
}

// Sign derives the authentication tag over value and prepends it.
func (s *CookieSigner) Sign(value string) string {
	return base64.RawURLEncoding.EncodeToString(s.tag(value)) + "." + value
}

// Verify recomputes the tag from the embedded value and compares it against
// the embedded tag in constant time. It returns the original value only on
// an exact match; any signature mismatch, malformed structure, or missing
// secret yields ("", false). Fails closed.
func (s *CookieSigner) Verify(signed string) (string, bool) {
	if len(s.secret) == 0 {
		return "", false
	}
	tag, value, found := strings.Cut(signed, ".")
	if !found {
		return "", false
	}
	got, err := base64.RawURLEncoding.DecodeString(tag)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(got, s.tag(value)) {
		return "", false
	}
	return value, true
}

func (s *CookieSigner) tag(value string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(value))
	return h.Sum(nil)
}
