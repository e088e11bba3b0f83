package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/config"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/seed"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, mongoStore, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := seed.Run(ctx, mongoStore, logger, time.Now().In(cfg.Timezone)); err != nil {
		log.Fatal(err)
	}

	logger.Info("seed completed")
}
