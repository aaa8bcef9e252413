// Package main はAPIサーバーのエントリポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"encrypted-config-value/config"
	"encrypted-config-value/internal/domain"
	"encrypted-config-value/internal/handler"
	"encrypted-config-value/internal/infra"
	"encrypted-config-value/internal/middleware"
	"encrypted-config-value/internal/usecase"
)

func main() {
	ctx := context.Background()

	// .envファイルを読み込む（存在しない場合は無視）
	// 既存の環境変数は上書きしない
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// トレーサー初期化（ロガー設定の前に実行）
	shutdownTracer, err := infra.InitTracer(ctx, cfg)
	if err != nil {
		slog.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			slog.Error("failed to shutdown tracer", "error", err)
		}
	}()

	infra.SetupLogger(cfg, infra.ParseLogLevel(cfg.LogLevel))

	// 鍵ストア初期化
	store, closeStore, err := infra.OpenKeyStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open key store", "key_source", cfg.KeySource, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	keys := usecase.NewKeyService(store, cfg.KeyLocation())
	substitution := usecase.NewSubstitutionService(keys)

	// 暗号化された設定値を復号
	if cfg.HasPlaceholders() {
		sub, err := substitution.Substitutor(ctx)
		if err != nil {
			slog.Error("failed to load key for encrypted settings", "error", err)
			os.Exit(1)
		}
		if err := cfg.Decrypt(ctx, sub); err != nil {
			slog.Error("failed to decrypt settings", "error", err)
			os.Exit(1)
		}
	}

	if cfg.ConfigFile != "" {
		sub, err := substitution.Substitutor(ctx)
		if err != nil {
			slog.Error("failed to load key for config file", "error", err)
			os.Exit(1)
		}
		doc, err := config.LoadDocument(cfg.ConfigFile, sub)
		if err != nil {
			slog.Error("failed to load config file", "error", err)
			os.Exit(1)
		}
		slog.Info("config file verified", "path", cfg.ConfigFile, "top_level_entries", len(doc.Content))
	}

	if desc, err := keys.Describe(ctx); err == nil {
		slog.Info("key loaded",
			"key_source", cfg.KeySource,
			"key_type", desc.Type.String(),
			"fingerprint", desc.Fingerprint,
		)
	} else if errors.Is(err, domain.ErrKeyNotFound) {
		slog.Warn("no key configured, key endpoints will return 404", "key_source", cfg.KeySource)
	} else {
		slog.Error("failed to load key", "error", err)
		os.Exit(1)
	}

	// DI
	metrics := infra.NewMetrics()
	h := handler.NewConfigValueHandler(keys, substitution, middleware.NewAuditor(metrics))
	router := handler.NewRouter(h, metrics.Handler(), cfg)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.ConfigFile != "" {
		watcher, err := infra.NewFileWatcher(cfg.ConfigFile, 0, func(ctx context.Context) {
			recheckConfigFile(ctx, cfg.ConfigFile, substitution, metrics)
		})
		if err != nil {
			slog.Error("failed to watch config file", "path", cfg.ConfigFile, "error", err)
			os.Exit(1)
		}
		go func() {
			if err := watcher.Run(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("config file watcher stopped", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		<-sigCh

		slog.Info("shutting down server...")
		stopWatch()
		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting server", "port", cfg.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// recheckConfigFile は変更された設定ファイルのプレースホルダを再検証する。
func recheckConfigFile(ctx context.Context, path string, svc *usecase.SubstitutionService, metrics *infra.Metrics) {
	start := time.Now()
	sub, err := svc.Substitutor(ctx)
	if err == nil {
		_, err = config.LoadDocument(path, sub)
	}
	metrics.ObserveOperation("RECHECK_CONFIG_FILE", start, err)
	if err != nil {
		slog.ErrorContext(ctx, "config file no longer decrypts", "path", path, "error", err)
		return
	}
	slog.InfoContext(ctx, "config file re-verified", "path", path)
}
