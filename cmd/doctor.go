package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/jotbot/internal/config"
	"github.com/nextlevelbuilder/jotbot/internal/providers"
	"github.com/nextlevelbuilder/jotbot/internal/store/pg"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and required services",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor(cmd.Context())
		},
	}
}

func runDoctor(ctx context.Context) {
	fmt.Println("jotbot doctor")
	fmt.Printf("  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go:       %s\n", runtime.Version())
	fmt.Println()

	cfgPath := resolveConfigPath()
	fmt.Printf("  Config:   %s", cfgPath)
	if _, err := os.Stat(cfgPath); err != nil {
		fmt.Println(" (NOT FOUND, env-only)")
	} else {
		fmt.Println(" (OK)")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  Config load error: %s\n", err)
		return
	}

	fmt.Println()
	fmt.Println("  Services:")

	checkPostgres(cfg.Database.PostgresDSN)
	checkOllama(ctx, cfg)

	if cfg.Whisper.URL != "" {
		fmt.Printf("    Whisper:  configured (%s)\n", cfg.Whisper.URL)
	} else {
		fmt.Println("    Whisper:  not configured (/summarize_meeting disabled)")
	}

	fmt.Println()
	if cfg.Telegram.Token != "" {
		fmt.Println("  Telegram: token present")
	} else {
		fmt.Println("  Telegram: token MISSING")
	}
}

func checkPostgres(dsn string) {
	start := time.Now()
	db, err := pg.OpenDB(dsn)
	if err != nil {
		fmt.Printf("    Postgres: UNREACHABLE (%s)\n", err)
		return
	}
	defer db.Close()
	fmt.Printf("    Postgres: OK (%s)\n", time.Since(start).Round(time.Millisecond))
}

func checkOllama(ctx context.Context, cfg *config.Config) {
	provider := providers.NewOllamaProvider(providers.OllamaConfig{
		APIBase: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.Model,
	})
	if provider.CheckConnection(ctx) {
		fmt.Printf("    Ollama:   OK (%s, model %s)\n", cfg.Ollama.BaseURL, cfg.Ollama.Model)
	} else {
		fmt.Printf("    Ollama:   UNREACHABLE (%s)\n", cfg.Ollama.BaseURL)
	}
}
