package main

import (
	"log"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/config"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/infra/db"
	httpapi "github.com/mukundan316-cell/UseCaseFramework-sub001/internal/infra/http"
)

func main() {
	cfg := config.FromEnv()
	store, err := db.NewStore(cfg)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	if err := store.AutoMigrate(); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	srv := httpapi.NewServer(cfg, store)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
