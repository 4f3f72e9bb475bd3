package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cred-keeper/internal/config"
	"github.com/MKhiriev/go-cred-keeper/internal/engine"
	"github.com/MKhiriev/go-cred-keeper/internal/handler"
	"github.com/MKhiriev/go-cred-keeper/internal/keyring"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/server"
	"github.com/MKhiriev/go-cred-keeper/internal/service"
	"github.com/MKhiriev/go-cred-keeper/internal/store"
	"github.com/MKhiriev/go-cred-keeper/internal/utils"
	"github.com/MKhiriev/go-cred-keeper/internal/zcap"
	"github.com/MKhiriev/go-cred-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("cred-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.LogLevel != "" {
		if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
			log.Warn().Err(err).Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping debug")
		}
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	utils.InitHasherPool(cfg.Security.HashKey)

	ctx := context.Background()
	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	var keys keyring.Keyring
	if len(cfg.Security.Keys) > 0 {
		if keys, err = keyring.NewRegistry(cfg.Security.Keys); err != nil {
			log.Fatal().Err(err).Msg("error building key registry")
		}
	}

	invoker, err := zcap.NewInvoker(cfg.Security, 0, keys, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating capability invoker")
	}

	synchronizer := engine.NewEngine(storages.References, storages.SyncProgress, invoker, cfg.Engine, log)

	services, err := service.NewServices(storages, synchronizer, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
