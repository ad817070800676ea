package doorkeep

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Service wires the handshake components behind one router. Everything here
// is immutable after construction; concurrent requests share only the Config
// and the store.
type Service struct {
	Config   *Config
	Signer   *CookieSigner
	Provider *DiscordProvider
	Issuer   *StateIssuer
	Verifier *CallbackVerifier
	Lookup   *LookupHandler
}

func New(cfg *Config, store IdentityRecordStore) *Service {
	signer := NewCookieSigner(cfg.CookieSecret)
	provider := NewDiscordProvider(cfg)
	return &Service{
		Config:   cfg,
		Signer:   signer,
		Provider: provider,
		Issuer:   NewStateIssuer(signer, provider),
		Verifier: NewCallbackVerifier(signer, provider, store),
		Lookup:   NewLookupHandler(store, cfg.AdminToken),
	}
}

// Handler returns the HTTP surface: the entry redirect, the provider
// callback, and the bot-facing record lookup.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/auth/discord", s.Issuer).Methods(http.MethodGet)
	r.Handle("/auth/discord/callback", s.Verifier).Methods(http.MethodGet)
	r.Handle("/api/get-user", s.Lookup).Methods(http.MethodGet)
	return r
}
