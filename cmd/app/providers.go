package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/cropsense/leafscan/internal/domain/detection"
	"github.com/cropsense/leafscan/internal/infra/config"
	"github.com/cropsense/leafscan/internal/infra/imaging"
	"github.com/cropsense/leafscan/internal/infra/llm/groq"
	"github.com/cropsense/leafscan/internal/infra/resultcache"
	"github.com/cropsense/leafscan/internal/infra/scanrepo"
	"github.com/cropsense/leafscan/internal/infra/scanstore"
)

func provideDetectionConfig(cfg *config.Config) detection.Config {
	return detection.Config{
		Model:       cfg.Groq.Model,
		Temperature: cfg.Groq.Temperature,
		MaxTokens:   cfg.Groq.MaxTokens,
		TopP:        cfg.Groq.TopP,
		CacheTTL:    cfg.Detection.Cache.TTL,
	}
}

func provideNormalizer(cfg *config.Config, logger *slog.Logger) detection.ImageNormalizer {
	return imaging.NewNormalizer(
		cfg.Detection.TargetSize,
		cfg.Detection.MinDimension,
		cfg.Detection.MaxDimension,
		cfg.Detection.Enhance,
		logger,
	)
}

// provideVisionClient returns nil when no API key is configured, which puts
// the detection service into mock mode.
func provideVisionClient(cfg *config.Config, logger *slog.Logger) detection.VisionClient {
	if !cfg.Groq.Configured() {
		logger.Info("groq api key not set, running in mock mode")
		return nil
	}
	client, err := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Timeout)
	if err != nil {
		logger.Error("failed to initialize groq client, running in mock mode", "error", err)
		return nil
	}
	logger.Info("groq vision client enabled", "model", cfg.Groq.Model)
	return client
}

func provideScanRepository(cfg *config.Config, logger *slog.Logger) detection.ScanRepository {
	fallback := scanrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Persistence.Postgres.DSN)
	if dsn == "" {
		logger.Info("scan postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Persistence.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Persistence.Postgres.MaxConns
	}
	if cfg.Persistence.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Persistence.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("scan postgres repository enabled")
	return scanrepo.NewPostgresRepository(pool)
}

func provideImageStore(cfg *config.Config, logger *slog.Logger) detection.ImageStore {
	storage := cfg.Persistence.Storage
	if strings.TrimSpace(storage.Endpoint) == "" || strings.TrimSpace(storage.AccessKey) == "" {
		logger.Info("scan storage not configured, using memory store")
		return scanstore.NewMemoryStore()
	}
	store, err := scanstore.NewS3Store(
		storage.Endpoint,
		storage.AccessKey,
		storage.SecretKey,
		storage.Bucket,
		storage.Region,
		storage.PublicBaseURL,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize scan storage, using memory store", "error", err)
		return scanstore.NewMemoryStore()
	}
	logger.Info("scan image storage enabled", "bucket", storage.Bucket)
	return store
}

func provideResultCache(cfg *config.Config, logger *slog.Logger) detection.ResultCache {
	if cfg.Detection.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg.Detection.Cache.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return resultcache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return resultcache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("detection valkey cache enabled", "addr", cfg.Detection.Cache.Addr)
			return resultcache.NewValkeyStore(client)
		}
	}
	return resultcache.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(addr, "://") {
		opt, err = valkey.ParseURL(addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
