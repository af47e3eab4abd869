package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/questionboard/questionboard/handlers"
	"github.com/questionboard/questionboard/internal/config"
	"github.com/questionboard/questionboard/internal/database"
	"github.com/questionboard/questionboard/internal/question/repository"
	"github.com/questionboard/questionboard/internal/question/service"
	"github.com/questionboard/questionboard/internal/sessions"
	"github.com/questionboard/questionboard/pkg/logger"
	"github.com/questionboard/questionboard/pkg/metrics"
)

const (
	connectAttempts = 5
	shutdownTimeout = 10 * time.Second
)

func serve(parent context.Context) error {
	started := time.Now()
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.LogLevel != "" {
		logger.Init(cfg.LogLevel)
	}
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()
	if err := st.migrate(ctx); err != nil {
		return fmt.Errorf("prepare %s store: %w", cfg.Store.Driver, err)
	}

	ready := map[string]handlers.Pinger{"store": st.repo}

	var revocations sessions.RevocationList
	if addr := cfg.Redis.Addr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = client.Close() }()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s not reachable yet: %v", addr, err)
		} else {
			logger.Infof("connected to Redis at %s", addr)
		}
		revocations = sessions.NewRedisRevocationList(client, "")
		ready["redis"] = handlers.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
	} else if cfg.Session.Mode == string(sessions.ModeSigned) {
		logger.Warnf("REDIS_HOST not set: logged-out signed sessions stay valid until they expire")
	}

	gate := sessions.NewGate(sessions.Options{
		Password:    cfg.Admin.Password,
		Mode:        sessions.Mode(cfg.Session.Mode),
		Secret:      []byte(cfg.Session.Secret),
		TTL:         cfg.Session.TTL,
		CookieName:  cfg.Session.CookieName,
		Secure:      cfg.Server.IsProduction(),
		Revocations: revocations,
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	router := handlers.NewRouter(handlers.RouterDeps{
		Questions: service.New(st.repo),
		Gate:      gate,
		Ready:     ready,
		Started:   started,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting %s on %s (store=%s, sessions=%s)", appName, srv.Addr, cfg.Store.Driver, gate.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// store bundles the selected repository with its schema setup and cleanup.
type store struct {
	repo    repository.Repository
	migrate func(context.Context) error
	close   func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		var repo *repository.PostgresRepo
		var closeFn func()
		err := database.Retry(ctx, "postgres", connectAttempts, time.Second, func(ctx context.Context) error {
			pool, err := database.ConnectPostgres(ctx, cfg.Postgres.URL, cfg.Postgres.MaxConns)
			if err != nil {
				return err
			}
			repo = repository.NewPostgresRepo(pool)
			closeFn = pool.Close
			return nil
		})
		if err != nil {
			return nil, err
		}
		logger.Infof("using PostgreSQL question store")
		return &store{repo: repo, migrate: repo.Migrate, close: closeFn}, nil

	case config.StoreMongo:
		var repo *repository.MongoRepo
		var closeFn func()
		err := database.Retry(ctx, "mongodb", connectAttempts, time.Second, func(ctx context.Context) error {
			client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if err != nil {
				return err
			}
			repo = repository.NewMongoRepo(client.Database(cfg.MongoDB.Database))
			closeFn = func() { _ = client.Disconnect(context.Background()) }
			return nil
		})
		if err != nil {
			return nil, err
		}
		logger.Infof("using MongoDB question store (database=%s)", cfg.MongoDB.Database)
		return &store{repo: repo, migrate: repo.Migrate, close: closeFn}, nil

	default:
		logger.Warnf("using in-memory question store; questions are lost on restart")
		return &store{
			repo:    repository.NewMemoryRepo(),
			migrate: func(context.Context) error { return nil },
			close:   func() {},
		}, nil
	}
}

func migrate(parent context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := openStore(parent, cfg)
	if err != nil {
		return err
	}
	defer st.close()
	if err := st.migrate(parent); err != nil {
		return fmt.Errorf("migrate %s store: %w", cfg.Store.Driver, err)
	}
	logger.Infof("%s store schema is up to date", cfg.Store.Driver)
	return nil
}
