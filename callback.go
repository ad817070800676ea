package doorkeep

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// FailureKind classifies a terminal handshake failure. The HTTP mapping
// lives in statusFor/messageFor so Verify itself stays transport-free.
type FailureKind int

const (
	// FailureCSRF: missing, mismatched, or tampered state.
	FailureCSRF FailureKind = iota
	// FailureBinding: authenticated identity differs from the bound member.
	FailureBinding
	// FailureExchange: code exchange or identity fetch failed.
	FailureExchange
	// FailureStore: the record write failed after a successful exchange.
	FailureStore
)

// FlowError is a terminal failure of one callback invocation. Err carries
// operator-visible detail and never reaches the response body.
type FlowError struct {
	Kind FailureKind
	Err  error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return messageFor(e.Kind)
}

func (e *FlowError) Unwrap() error { return e.Err }

func statusFor(kind FailureKind) int {
	switch kind {
	case FailureCSRF, FailureBinding:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// User-visible failure copy. Intentionally generic: no provider errors,
// tokens, or secrets.
func messageFor(kind FailureKind) string {
	switch kind {
	case FailureCSRF:
		return "Invalid state. Please try again."
	case FailureBinding:
		return "Authentication mismatch. Please try again."
	default:
		return "An error occurred during verification. Please try again."
	}
}

// CallbackVerifier consumes the provider redirect. A callback invocation
// walks validation steps in a fixed order and transitions straight to a
// failure response on the first step that fails; nothing is retried within
// an attempt, and no state survives a failed attempt. Restarting means
// visiting the entry redirect again for fresh cookies.
type CallbackVerifier struct {
	signer   *CookieSigner
	provider *DiscordProvider
	store    IdentityRecordStore
}

func NewCallbackVerifier(signer *CookieSigner, provider *DiscordProvider, store IdentityRecordStore) *CallbackVerifier {
	return &CallbackVerifier{signer: signer, provider: provider, store: store}
}

// Verify runs the full validation sequence for one callback request:
// CSRF check, code exchange, identity fetch, subject-binding check, and the
// terminal persistence write. On success the written record is returned; on
// failure the kind-tagged error identifies which step rejected the attempt.
func (v *CallbackVerifier) Verify(ctx context.Context, r *http.Request) (*VerificationRecord, *FlowError) {
	state := r.URL.Query().Get("state")
	storedState, ok := v.signedCookie(r, stateCookieName)
	if state == "" || !ok || storedState != state {
		return nil, &FlowError{Kind: FailureCSRF, Err: fmt.Errorf("state parameter does not match signed cookie")}
	}

	token, err := v.provider.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		return nil, &FlowError{Kind: FailureExchange, Err: fmt.Errorf("code exchange failed: %w", err)}
	}

	identity, err := v.provider.FetchIdentity(ctx, token)
	if err != nil {
		return nil, &FlowError{Kind: FailureExchange, Err: fmt.Errorf("identity fetch failed: %w", err)}
	}

	// A bot-initiated flow is bound to the member it was issued for; a
	// different account completing it is rejected. Without the cookie this
	// is a self-service flow and no binding is enforced.
	memberID := identity.ID
	if storedMemberID, ok := v.signedCookie(r, memberCookieName); ok {
		if storedMemberID != identity.ID {
			slog.Warn("member binding mismatch",
				"stored_member_id", storedMemberID,
				"oauth_user_id", identity.ID)
			return nil, &FlowError{Kind: FailureBinding, Err: fmt.Errorf("bound member %s completed by account %s", storedMemberID, identity.ID)}
		}
		memberID = storedMemberID
	}

	rec := &VerificationRecord{
		DiscordID:  memberID,
		Email:      identity.Email,
		Verified:   identity.Verified,
		Username:   identity.Username,
		GlobalName: identity.GlobalName,
		Avatar:     identity.Avatar,
		CreatedAt:  time.Now().UTC(),
	}
	if err := v.store.PutRecord(ctx, rec); err != nil {
		return nil, &FlowError{Kind: FailureStore, Err: fmt.Errorf("record write failed: %w", err)}
	}
	return rec, nil
}

// ServeHTTP handles GET /auth/discord/callback?code=...&state=... and maps
// the Verify outcome onto the wire.
func (v *CallbackVerifier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec, flowErr := v.Verify(r.Context(), r)
	if flowErr != nil {
		if flowErr.Kind != FailureBinding {
			// binding mismatches are already logged distinctly above
			slog.Info("callback rejected", "err", flowErr.Err)
		}
		http.Error(w, messageFor(flowErr.Kind), statusFor(flowErr.Kind))
		return
	}

	slog.Info("stored verification record", "username", rec.Username, "discord_id", rec.DiscordID)

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<h1>Thank You!</h1><p>You have been successfully verified and your data is stored.</p>`)
	if rec.Email == nil {
		fmt.Fprint(w, `<p style="color:orange;"><b>Note:</b> Your email address was not provided. Please ensure you have a verified email on your Discord account and that you granted the email permission.</p>`)
	}
	fmt.Fprint(w, `<p>You can now close this window.</p>`)
}

// signedCookie reads and verifies a signed cookie, treating a missing
// cookie, bad signature, or malformed value uniformly as absent.
func (v *CallbackVerifier) signedCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	return v.signer.Verify(cookie.Value)
}
