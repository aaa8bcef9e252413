// Package main はCLIツールのエントリポイント。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"encrypted-config-value/config"
	"encrypted-config-value/internal/infra"
	"encrypted-config-value/internal/repository"
	"encrypted-config-value/internal/usecase"
)

const version = "1.0.0"

var (
	keyFile string
	apiURL  string
	timeout time.Duration

	cfg        *config.Config
	httpClient *http.Client
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "configctl",
		Short:         "Encrypted config value CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 既存の環境変数は上書きしない
			_ = godotenv.Load()
			cfg = config.Load()
			if keyFile != "" {
				cfg.KeySource = config.KeySourceFile
				cfg.KeyPath = keyFile
			}
			if apiURL == "" {
				apiURL = os.Getenv("CONFIGCTL_API_URL")
			}
			httpClient = &http.Client{Timeout: timeout}

			// 標準出力は結果の出力に使うため、ログは標準エラーへ
			level := infra.ParseLogLevel(cfg.LogLevel)
			if os.Getenv("LOG_LEVEL") == "" {
				level = infra.ParseLogLevel("WARN")
			}
			slog.SetDefault(infra.NewLogger(os.Stderr, cfg, level))

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&keyFile, "key-file", "k", "", "Key file path (overrides KEY_SOURCE and KEY_PATH)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Server URL for remote encryption (or set CONFIGCTL_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(generateKeyCmd())
	rootCmd.AddCommand(encryptValueCmd())
	rootCmd.AddCommand(decryptValueCmd())
	rootCmd.AddCommand(decryptConfigCmd())
	rootCmd.AddCommand(checkConfigCmd())
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗")+" "+err.Error())
		os.Exit(1)
	}
}

// versionCmd はバージョン情報を表示する。
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("configctl version %s\n", version)
		},
	}
}

// openKeyService は設定された鍵ストアのKeyServiceを返す。
func openKeyService(ctx context.Context) (*usecase.KeyService, func(), error) {
	store, closeFn, err := infra.OpenKeyStore(ctx, cfg)
	if err != nil {
		return nil, closeFn, err
	}
	return usecase.NewKeyService(store, cfg.KeyLocation()), closeFn, nil
}

// fileKeyService はファイルに鍵を保存するKeyServiceを返す。
func fileKeyService(path string) *usecase.KeyService {
	return usecase.NewKeyService(repository.NewKeyFileStore(), path)
}

func success(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}

func hint(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.CyanString("→")+" "+fmt.Sprintf(format, args...))
}
