package doorkeep

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
)

// Handshake cookie names and lifetime. Five minutes bounds the window in
// which a callback can consume the issued state.
const (
	stateCookieName  = "state"
	memberCookieName = "memberId"
	handshakeMaxAge  = 300
)

// StateIssuer starts a handshake: it mints a CSRF nonce, packages it (and
// the optional subject binding) as signed short-lived cookies, and redirects
// the browser to the Discord authorization page. Purely derived from inputs
// and randomness; nothing is persisted server-side.
type StateIssuer struct {
	signer   *CookieSigner
	provider *DiscordProvider
}

func NewStateIssuer(signer *CookieSigner, provider *DiscordProvider) *StateIssuer {
	return &StateIssuer{signer: signer, provider: provider}
}

// ServeHTTP handles GET /auth/discord?member=<id>. The member parameter is
// set by the bot when it initiates the flow for a specific member; its
// absence means no subject binding will be enforced at callback time.
func (s *StateIssuer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	nonce, err := newStateNonce()
	if err != nil {
		slog.Error("failed to generate state nonce", "err", err)
		http.Error(w, "An error occurred. Please try again.", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, handshakeCookie(stateCookieName, s.signer.Sign(nonce)))
	if memberID := r.URL.Query().Get("member"); memberID != "" {
		http.SetCookie(w, handshakeCookie(memberCookieName, s.signer.Sign(memberID)))
	}

	// The provider only echoes state back, so the URL carries the bare
	// nonce; the callback re-derives the trusted copy from the signed
	// cookie.
	http.Redirect(w, r, s.provider.AuthCodeURL(nonce), http.StatusFound)
}

func handshakeCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   handshakeMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// newStateNonce returns 128 bits from crypto/rand in the base64url alphabet
// (22 characters), enough that guessing a live state is negligible.
func newStateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
