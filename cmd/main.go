package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kyz7/storefront/internal/access"
	"github.com/Kyz7/storefront/internal/cache"
	"github.com/Kyz7/storefront/internal/cart"
	"github.com/Kyz7/storefront/internal/catalog"
	"github.com/Kyz7/storefront/internal/config"
	"github.com/Kyz7/storefront/internal/database"
	"github.com/Kyz7/storefront/internal/logger"
	"github.com/Kyz7/storefront/internal/role"
	"github.com/Kyz7/storefront/internal/server"
	"github.com/Kyz7/storefront/internal/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration error: ", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal("❌ Logger setup failed: ", err)
	}
	defer func() { _ = zl.Sync() }()

	insecure, err := utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTAllowInsecure)
	if err != nil {
		zl.Fatal("JWT configuration error", zap.Error(err))
	}
	if insecure {
		zl.Warn("JWT_SECRET is not usable, signing with the built-in test key; tokens can be forged")
	} else {
		zl.Info("JWT secret validated")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	zl.Info("database migrated", zap.String("driver", cfg.DBDriver))

	// ========== ROLE CACHE ==========
	storeOpts := []role.Option{role.WithLogger(zl)}
	if cfg.RedisAddr != "" {
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			zl.Warn("redis unavailable, role lookups will hit the database", zap.Error(err))
		} else {
			defer client.Close()
			storeOpts = append(storeOpts, role.WithCache(role.NewCache(client, cfg.RoleCacheTTL)))
			zl.Info("role cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.RoleCacheTTL))
		}
	}

	roles := role.NewStore(db, storeOpts...)
	tree := catalog.NewTree(db, zl)
	deps := server.Deps{
		Roles:     roles,
		Evaluator: access.NewEvaluator(roles, zl),
		Catalog:   tree,
		Cart:      cart.NewComposer(db, tree, zl),
		Log:       zl,
	}

	// ========== SEED DEFAULT DATA ==========
	if err := role.SeedDefaultRoles(ctx, roles); err != nil {
		zl.Warn("failed to seed default roles", zap.Error(err))
	} else {
		zl.Info("default roles seeded")
	}

	// ========== START SERVER ==========
	app := server.New(deps)

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			zl.Error("shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("storefront server starting", zap.String("addr", cfg.ServerAddr))
	if err := app.Listen(cfg.ServerAddr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}
