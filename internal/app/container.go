// Package app wires infrastructure adapters into the query pipeline.
package app

import (
	"context"
	"time"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/infrastructure/cache"
	"github.com/asknix/asknix/internal/infrastructure/config"
	"github.com/asknix/asknix/internal/infrastructure/executor"
	"github.com/asknix/asknix/internal/infrastructure/format"
	"github.com/asknix/asknix/internal/infrastructure/knowledge"
	"github.com/asknix/asknix/internal/infrastructure/recognizer"
	"github.com/asknix/asknix/internal/infrastructure/security"
	"github.com/asknix/asknix/internal/pkg/logger"
	"github.com/asknix/asknix/internal/ports"
	"github.com/asknix/asknix/internal/services"
)

// Container holds the wired dependency graph.
type Container struct {
	Pipeline     *services.QueryPipeline
	Config       domain.Config
	ConfigLoader *config.FileLoader
	CacheStore   ports.CacheStore
	AuditLog     ports.AuditLog
	Availability executor.Availability
	Logger       *logger.ZapLogger

	auditSink *security.SQLiteAuditLog
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)

	policy, err := security.LoadPolicy(cfg.Security.RulesFile)
	if err != nil {
		policy, err = security.LoadPolicy("")
		if err != nil {
			return nil, err
		}
	}

	var limiter *security.RateLimiter
	if cfg.Security.Enabled {
		limiter = security.NewRateLimiter(cfg.Security.RequestsPerMin, cfg.Security.Burst)
	}

	auditSink := security.NewSQLiteAuditLog("", cfg.Security.AuditMaxRecords)
	audit := security.NewMemoryAuditLog(cfg.Security.AuditMemoryBound, auditSink)
	validator := security.NewValidator(policy, limiter, audit, log)

	kb := knowledge.New("")
	rec := recognizer.New(kb.Vocabulary(), log)

	avail := executor.Probe("nix", "")
	var native ports.Toolchain
	if cfg.Execution.PreferNative && avail.HasManifest() {
		native = executor.NewNativeToolchain(avail.ManifestPath)
	}
	subprocess := executor.NewSubprocessToolchain(avail.BinaryPath)
	engine := executor.NewEngine(native, subprocess, time.Duration(cfg.Execution.TimeoutSeconds)*time.Second, log)

	store := cache.New(cfg.Cache.Dir, cfg.Cache.MemoryMaxEntries, log)

	pipeline := &services.QueryPipeline{
		Validator:  validator,
		Recognizer: rec,
		Knowledge:  kb,
		Engine:     engine,
		Cache:      store,
		Formatter:  format.New(kb.Education),
		Logger:     log,
	}

	return &Container{
		Pipeline:     pipeline,
		Config:       cfg,
		ConfigLoader: cfgLoader,
		CacheStore:   store,
		AuditLog:     audit,
		Availability: avail,
		Logger:       log,
		auditSink:    auditSink,
	}, nil
}

// Close releases held resources. Safe to call once at process exit.
func (c *Container) Close() {
	if c.CacheStore != nil {
		_ = c.CacheStore.Close()
	}
	if c.auditSink != nil {
		_ = c.auditSink.Close()
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
}
