package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jewelmj/splitsmart/internal/config"
	"github.com/jewelmj/splitsmart/internal/handlers"
	"github.com/jewelmj/splitsmart/internal/service"
	"github.com/jewelmj/splitsmart/internal/storage"
	"github.com/jewelmj/splitsmart/internal/storage/jsonfile"
	"github.com/jewelmj/splitsmart/internal/storage/sqlite"
	"github.com/jewelmj/splitsmart/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var store storage.Store
	switch cfg.Store {
	case config.StoreSQLite:
		store, err = sqlite.New(cfg.DBPath)
		if err != nil {
			slog.Error("failed to initialize storage", "error", err)
			os.Exit(1)
		}
		slog.Info("storage initialized", "backend", cfg.Store, "database", cfg.DBPath)
	case config.StoreJSONFile:
		store, err = jsonfile.New(cfg.DataFile)
		if err != nil {
			slog.Error("failed to initialize storage", "error", err)
			os.Exit(1)
		}
		slog.Info("storage initialized", "backend", cfg.Store, "file", cfg.DataFile)
	}
	defer store.Close()

	users := service.NewUserService(store)
	groups := service.NewGroupService(store)
	router := handlers.NewRouter(users, groups)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := router.Run(addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
