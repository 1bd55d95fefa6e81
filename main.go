package main

import (
	"context"
	"log"

	"konvyshop/config"
	"konvyshop/models"
	"konvyshop/preview"
	"konvyshop/shopapi"
	"konvyshop/web"
	"konvyshop/web/session"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger.SetLogLevel(cfg.LogLevel)

	// Activity log (search and purchase history, trending terms)
	if err := models.InitDB(cfg.Activity.DBPath); err != nil {
		log.Fatal("Failed to initialize activity log: ", err)
	}
	defer models.CloseDB()

	// The catalog loads in the background; until then autocomplete finds nothing
	catalog := models.NewCatalog()
	go catalog.Load(context.Background(), shopapi.NewCatalogClient(cfg.Shop.CatalogURL, cfg.Shop.Timeout))

	store, closeStore, err := sessionStore(cfg)
	if err != nil {
		log.Fatal("Failed to open session store: ", err)
	}
	defer closeStore()

	tokens, err := models.NewSessionTokens(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		log.Fatal("Failed to initialize session tokens: ", err)
	}

	sessions, err := session.NewManager(session.ManagerOptions{
		Tokens:  tokens,
		Store:   store,
		Catalog: catalog,
		Shop: shopapi.Options{
			BaseURL:        cfg.Shop.BaseURL,
			Timeout:        cfg.Shop.Timeout,
			RequestsPerSec: cfg.Shop.RequestsPerSec,
			Burst:          cfg.Shop.Burst,
		},
		Prober:  preview.NewHTTPProber(),
		IdleTTL: cfg.Session.IdleTTL,
	})
	if err != nil {
		log.Fatal("Failed to create session manager: ", err)
	}

	srv := web.NewServer(web.Options{
		Server: rweb.ServerOptions{
			Address: cfg.Server.Address,
			Verbose: cfg.Server.Verbose,
		},
		Sessions:          sessions,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
	})
	log.Fatal(web.Run(srv, cfg.Server.Address))
}

func sessionStore(cfg *config.Config) (models.SessionStore, func(), error) {
	if cfg.Session.Store != "redis" {
		logger.Info("Sessions kept in memory")
		return models.NewMemorySessionStore(cfg.Session.TTL), func() {}, nil
	}

	store, err := models.NewRedisSessionStore(models.RedisStoreConfig{
		Addr:     cfg.Session.RedisAddr,
		Password: cfg.Session.RedisPassword,
		DB:       cfg.Session.RedisDB,
		TTL:      cfg.Session.TTL,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Sessions kept in redis", "addr", cfg.Session.RedisAddr)
	return store, func() {
		if err := store.Close(); err != nil {
			logger.LogErr(err, "failed to close redis session store")
		}
	}, nil
}
