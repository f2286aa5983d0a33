package config

import (
	"os"
	"reflect"
	"testing"
)

func TestSettingsDiff(t *testing.T) {
	base := func() *Config {
		return &Config{
			Telegram: TelegramConfig{Token: "tok"},
			Database: DatabaseConfig{PostgresDSN: "dsn"},
			Ollama:   OllamaConfig{BaseURL: "http://localhost:11434", Model: "m"},
			Log:      LogConfig{Level: "info"},
		}
	}

	old := base()
	same := base()
	if diff := settingsDiff(old, same); diff != nil {
		t.Errorf("identical configs diff = %v", diff)
	}

	next := base()
	next.Log.Level = "debug"
	next.Ollama.Model = "llama3"
	want := []string{"ollama.model", "log.level"}
	if diff := settingsDiff(old, next); !reflect.DeepEqual(diff, want) {
		t.Errorf("diff = %v, want %v", diff, want)
	}

	if diff := settingsDiff(nil, next); diff != nil {
		t.Errorf("nil old config diff = %v", diff)
	}
}

func TestRestartOnlySettings(t *testing.T) {
	// Log level applies live; wiring-time settings do not.
	if restartOnlySettings["log.level"] {
		t.Error("log.level should apply without restart")
	}
	for _, key := range []string{"telegram.token", "database.postgresDsn", "ollama.baseUrl"} {
		if !restartOnlySettings[key] {
			t.Errorf("%s should be restart-only", key)
		}
	}
}

func TestWatcherReload(t *testing.T) {
	path := writeConfig(t, `{
	telegram: { token: "tok" },
	database: { postgresDsn: "dsn" },
}`)

	initial, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cw, err := NewWatcher(path, initial)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer cw.watcher.Close()

	var got *Config
	cw.OnChange(func(cfg *Config) { got = cfg })

	updated := `{
	telegram: { token: "tok" },
	database: { postgresDsn: "dsn" },
	log: { level: "debug" },
}`
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	cw.reload()

	if got == nil {
		t.Fatal("change handler not called")
	}
	if got.Log.Level != "debug" {
		t.Errorf("reloaded level = %q", got.Log.Level)
	}
	if cw.last != got {
		t.Error("watcher did not keep the reloaded config for the next diff")
	}
}

func TestWatcherReloadKeepsPreviousOnError(t *testing.T) {
	path := writeConfig(t, `{
	telegram: { token: "tok" },
	database: { postgresDsn: "dsn" },
}`)

	initial, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cw, err := NewWatcher(path, initial)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer cw.watcher.Close()

	called := false
	cw.OnChange(func(*Config) { called = true })

	if err := os.WriteFile(path, []byte(`{ not valid`), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	cw.reload()

	if called {
		t.Error("handler called for invalid config")
	}
	if cw.last != initial {
		t.Error("previous config not kept after failed reload")
	}
}
