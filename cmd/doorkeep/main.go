// Command doorkeep runs the verification service: the OAuth2 entry
// redirect, the provider callback, and the bot-facing record lookup.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"cloud.google.com/go/datastore"

	"github.com/doorkeep/doorkeep"
	"github.com/doorkeep/doorkeep/stores/fs"
	"github.com/doorkeep/doorkeep/stores/gae"
)

func main() {
	cfg, err := doorkeep.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open record store", "backend", cfg.StoreBackend, "err", err)
		os.Exit(1)
	}

	svc := doorkeep.New(cfg, store)
	slog.Info("listening", "addr", cfg.Addr, "store", cfg.StoreBackend)
	if err := http.ListenAndServe(cfg.Addr, svc.Handler()); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *doorkeep.Config) (doorkeep.IdentityRecordStore, error) {
	switch cfg.StoreBackend {
	case "fs":
		return fs.NewRecordStore(cfg.StoragePath), nil
	case "datastore":
		client, err := datastore.NewClient(ctx, cfg.DatastoreProject)
		if err != nil {
			return nil, err
		}
		return gae.NewRecordStore(client, cfg.DatastoreNamespace), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
