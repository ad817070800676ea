package doorkeep_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/doorkeep/doorkeep"
	"github.com/doorkeep/doorkeep/stores/fs"
)

func testConfig() *doorkeep.Config {
	return &doorkeep.Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURI:  "https://verify.example.com/auth/discord/callback",
		CookieSecret: "test-cookie-secret",
		AdminToken:   "test-admin-token",
	}
}

func newTestService(t *testing.T) *doorkeep.Service {
	t.Helper()
	return doorkeep.New(testConfig(), fs.NewRecordStore(t.TempDir()))
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestStateIssuer(t *testing.T) {
	svc := newTestService(t)

	t.Run("redirects to the Discord authorization URL", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/discord", nil)
		rr := httptest.NewRecorder()

		svc.Handler().ServeHTTP(rr, req)

		if rr.Code != http.StatusFound {
			t.Fatalf("Expected status %d, got %d", http.StatusFound, rr.Code)
		}

		location := rr.Header().Get("Location")
		if !strings.HasPrefix(location, "https://discord.com/api/oauth2/authorize") {
			t.Errorf("Expected redirect to Discord, got: %s", location)
		}

		parsedURL, err := url.Parse(location)
		if err != nil {
			t.Fatalf("Failed to parse redirect URL: %v", err)
		}
		query := parsedURL.Query()
		if query.Get("client_id") != "test-client-id" {
			t.Errorf("Expected client_id in URL, got %q", query.Get("client_id"))
		}
		if query.Get("redirect_uri") != "https://verify.example.com/auth/discord/callback" {
			t.Errorf("Expected registered redirect_uri in URL, got %q", query.Get("redirect_uri"))
		}
		if query.Get("response_type") != "code" {
			t.Errorf("Expected response_type=code in URL")
		}
		if !strings.Contains(query.Get("scope"), "identify") || !strings.Contains(query.Get("scope"), "email") {
			t.Errorf("Expected identify and email scopes, got %q", query.Get("scope"))
		}
		if len(query.Get("state")) < 21 {
			t.Errorf("Expected state of at least 21 chars, got %q", query.Get("state"))
		}
	})

	t.Run("state cookie is signed and matches the URL state", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/discord", nil)
		rr := httptest.NewRecorder()

		svc.Handler().ServeHTTP(rr, req)

		stateCookie := findCookie(rr.Result().Cookies(), "state")
		if stateCookie == nil {
			t.Fatal("Expected state cookie to be set")
		}

		nonce, ok := svc.Signer.Verify(stateCookie.Value)
		if !ok {
			t.Fatal("Expected state cookie to carry a valid signature")
		}

		parsedURL, _ := url.Parse(rr.Header().Get("Location"))
		if urlState := parsedURL.Query().Get("state"); urlState != nonce {
			t.Errorf("State mismatch: cookie=%s, url=%s", nonce, urlState)
		}
	})

	t.Run("handshake cookies have the locked-down attributes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/discord?member=111", nil)
		rr := httptest.NewRecorder()

		svc.Handler().ServeHTTP(rr, req)

		for _, name := range []string{"state", "memberId"} {
			c := findCookie(rr.Result().Cookies(), name)
			if c == nil {
				t.Fatalf("Expected %s cookie to be set", name)
			}
			if !c.HttpOnly {
				t.Errorf("Expected %s cookie to be HttpOnly", name)
			}
			if !c.Secure {
				t.Errorf("Expected %s cookie to be Secure", name)
			}
			if c.SameSite != http.SameSiteLaxMode {
				t.Errorf("Expected %s cookie SameSite=Lax, got %v", name, c.SameSite)
			}
			if c.Path != "/" {
				t.Errorf("Expected %s cookie Path=/, got %q", name, c.Path)
			}
			if c.MaxAge != 300 {
				t.Errorf("Expected %s cookie Max-Age=300, got %d", name, c.MaxAge)
			}
		}
	})

	t.Run("member cookie binds the initiating member", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/discord?member=424242", nil)
		rr := httptest.NewRecorder()

		svc.Handler().ServeHTTP(rr, req)

		memberCookie := findCookie(rr.Result().Cookies(), "memberId")
		if memberCookie == nil {
			t.Fatal("Expected memberId cookie to be set")
		}
		if got, ok := svc.Signer.Verify(memberCookie.Value); !ok || got != "424242" {
			t.Errorf("Expected memberId cookie to verify to 424242, got %q (ok=%v)", got, ok)
		}
	})

	t.Run("no member cookie without the member parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/discord", nil)
		rr := httptest.NewRecorder()

		svc.Handler().ServeHTTP(rr, req)

		if c := findCookie(rr.Result().Cookies(), "memberId"); c != nil {
			t.Errorf("Expected no memberId cookie, got %q", c.Value)
		}
	})

	t.Run("generates unique state for each request", func(t *testing.T) {
		states := make(map[string]bool)

		for i := 0; i < 10; i++ {
			req := httptest.NewRequest(http.MethodGet, "/auth/discord", nil)
			rr := httptest.NewRecorder()

			svc.Handler().ServeHTTP(rr, req)

			parsedURL, _ := url.Parse(rr.Header().Get("Location"))
			state := parsedURL.Query().Get("state")
			if states[state] {
				t.Errorf("Duplicate state generated: %s", state)
			}
			states[state] = true
		}

		if len(states) != 10 {
			t.Errorf("Expected 10 unique states, got %d", len(states))
		}
	})
}
