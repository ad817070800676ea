// Package doorkeep verifies the binding between a Discord guild membership
// and a Discord account, using the OAuth2 authorization-code flow, and
// persists the result keyed by member id.
//
// # Flow
//
// A bot (or the member themselves) sends the browser to the entry redirect:
//
//	GET /auth/discord?member=<memberId>
//
// The StateIssuer generates a CSRF nonce, sets it as a signed, short-lived
// cookie, and redirects to Discord's authorization page. Discord sends the
// browser back to the callback:
//
//	GET /auth/discord/callback?code=...&state=...
//
// The CallbackVerifier checks the state parameter against the signed cookie,
// exchanges the authorization code for an access token, fetches the account
// identity from /users/@me, enforces that a bot-initiated flow is completed
// by the member it was issued for, and writes a VerificationRecord to the
// configured IdentityRecordStore. Bots query results via:
//
//	GET /api/get-user?discord_id=<id>   (header: x-admin-token)
//
// # Statelessness
//
// There is no server-side session store. The signed cookies ARE the pending
// handshake state: each attempt is a single browser round trip, valid for
// five minutes, and either runs to a terminal response or is abandoned. This
// keeps the service horizontally scalable with no coordination between
// instances.
//
// # Store Implementations
//
// The stores/fs package provides a JSON-file store suitable for development
// and small deployments. stores/gorm and stores/gae back the same interface
// with a relational database and Google Cloud Datastore respectively.
//
// # Security
//
// Cookies are integrity-protected (HMAC-SHA256) but not encrypted; nothing
// secret is ever placed in a cookie value. The CSRF nonce carries 128 bits
// from crypto/rand. State verification fails closed: a missing, malformed,
// or tampered cookie is treated as absent. Error responses are generic and
// never echo provider errors, tokens, or secrets.
//
// # Testing
//
// Handlers can be tested without a running HTTP server using
// httptest.NewRequest and httptest.ResponseRecorder. The Discord endpoints
// and HTTP client on DiscordProvider are injectable so a httptest.Server can
// stand in for the provider.
package doorkeep
