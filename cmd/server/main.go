package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"loancalc/internal/app/server/api"
	"loancalc/internal/app/server/config"
	"loancalc/internal/domain/calculation"
	"loancalc/internal/infrastructure/cache"
	"loancalc/internal/infrastructure/objectstore"
	"loancalc/internal/infrastructure/storage"
	"loancalc/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	if err := run(conf, log); err != nil {
		log.Error("server stopped with error", logger.Err(err))
		os.Exit(1)
	}
}

func run(conf *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, conf, log)
	if err != nil {
		return err
	}
	defer store.Close()

	calcOpts, closeCache, err := calculationOptions(ctx, conf, log)
	if err != nil {
		return err
	}
	defer closeCache()

	srv := &http.Server{
		Addr:              conf.Server.RunAddress,
		Handler:           api.New(conf, store, calcOpts, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", conf.Server.RunAddress, "env", conf.Env, "db", conf.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// calculationOptions подключает Redis и MinIO, если они настроены.
func calculationOptions(ctx context.Context, conf *config.Config, log *slog.Logger) ([]calculation.Option, func(), error) {
	var (
		opts    []calculation.Option
		closeFn = func() {}
	)

	if conf.Cache.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, conf.Cache.RedisAddr, conf.Cache.RedisPassword, conf.Cache.RedisDB)
		if err != nil {
			return nil, closeFn, err
		}
		redisCache := cache.NewRedisCache(client, log)
		opts = append(opts, calculation.WithCache(redisCache, conf.Cache.TTL))
		closeFn = func() { _ = redisCache.Close() }
		log.Info("using redis cache", "addr", conf.Cache.RedisAddr)
	} else {
		opts = append(opts, calculation.WithCache(cache.NewMemoryCache(), conf.Cache.TTL))
	}

	if conf.MinIO.Endpoint != "" {
		archive, err := objectstore.NewMinioStore(ctx, objectstore.Options{
			Endpoint:  conf.MinIO.Endpoint,
			AccessKey: conf.MinIO.AccessKey,
			SecretKey: conf.MinIO.SecretKey,
			Bucket:    conf.MinIO.Bucket,
			UseSSL:    conf.MinIO.UseSSL,
		})
		if err != nil {
			closeFn()
			return nil, func() {}, err
		}
		opts = append(opts, calculation.WithArchive(archive))
		log.Info("archiving schedules to minio", "endpoint", conf.MinIO.Endpoint, "bucket", conf.MinIO.Bucket)
	}

	return opts, closeFn, nil
}
