package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/internal/infra/analysiscache"
	"github.com/stylehive/outfit-planner/internal/infra/analyzer"
	"github.com/stylehive/outfit-planner/internal/infra/closetrepo"
	"github.com/stylehive/outfit-planner/internal/infra/config"
	"github.com/stylehive/outfit-planner/internal/infra/imagestore"
)

func provideServiceConfig(cfg *config.Config) closet.Config {
	return closet.Config{
		AnalysisCacheTTL: cfg.Analysis.CacheTTL,
	}
}

// providePgxPool returns nil when no DSN is configured or the database is
// unreachable; the repository providers fall back to memory in that case.
func providePgxPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Database.DSN)
	if dsn == "" {
		logger.Info("database dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}
	if cfg.Database.MinConns > 0 {
		poolConfig.MinConns = cfg.Database.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) closet.UserRepository {
	if pool == nil {
		return closetrepo.NewMemoryUserRepository()
	}
	return closetrepo.NewPostgresUserRepository(pool)
}

func provideClothingRepository(pool *pgxpool.Pool) closet.ClothingRepository {
	if pool == nil {
		return closetrepo.NewMemoryClothingRepository()
	}
	return closetrepo.NewPostgresClothingRepository(pool)
}

func provideOutfitRepository(pool *pgxpool.Pool) closet.OutfitRepository {
	if pool == nil {
		return closetrepo.NewMemoryOutfitRepository()
	}
	return closetrepo.NewPostgresOutfitRepository(pool)
}

func provideImageStore(cfg *config.Config, logger *slog.Logger) (closet.ImageStore, error) {
	switch cfg.Storage.Driver {
	case "s3":
		return imagestore.NewS3Storage(
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.AccessKey,
			cfg.Storage.S3.SecretKey,
			cfg.Storage.S3.Bucket,
			cfg.Storage.S3.Region,
			logger,
		)
	case "memory":
		return imagestore.NewMemoryStorage(), nil
	default:
		return imagestore.NewLocalStorage(cfg.Storage.Local.Dir, logger), nil
	}
}

func provideAnalyzer(logger *slog.Logger) closet.Analyzer {
	return analyzer.NewHeuristic(logger)
}

func provideAnalysisCache(cfg *config.Config, logger *slog.Logger) closet.AnalysisCache {
	if cfg.Analysis.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Analysis.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return analysiscache.NewMemoryCache()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return analysiscache.NewMemoryCache()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey analysis cache enabled", "addr", cfg.Analysis.Valkey.Addr)
			return analysiscache.NewValkeyCache(client, "closet")
		}
	}
	return analysiscache.NewMemoryCache()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
