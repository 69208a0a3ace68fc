// Blog API server entrypoint.
//
// @title        Blog API
// @version      1.0
// @description  REST backend for the blog: users, sessions, posts, comments and likes.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/galleryblog/blog-api/docs"
	"github.com/galleryblog/blog-api/internal/api"
	"github.com/galleryblog/blog-api/internal/infrastructure/config"
	mongodb "github.com/galleryblog/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/galleryblog/blog-api/internal/infrastructure/db/redis"
	"github.com/galleryblog/blog-api/internal/infrastructure/storage"
	"github.com/galleryblog/blog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnecting mongodb")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("creating user indexes")
	}
	if err := mongodb.NewCommentRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("creating comment indexes")
	}

	images, err := storage.NewLocalStore(cfg.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("preparing uploads directory")
	}

	e := api.NewRouter(db, rdb, images, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
