package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/fitness"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"BOT_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN",
		"BOT_GEMINI_API_KEY", "GEMINI_API_KEY",
		"BOT_OPENAI_API_KEY", "OPENAI_API_KEY",
		"BOT_DATABASE_PATH", "DATABASE_PATH",
		"BOT_AI_PROVIDER", "BOT_CHAT_CHUNK_SIZE",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TELEGRAM_TOKEN", "token")
	t.Setenv("BOT_GEMINI_API_KEY", "key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Telegram.Token != "token" || cfg.Gemini.APIKey != "key" {
		t.Errorf("credentials not read from environment: %+v", cfg.Telegram)
	}
	if cfg.Database.Path != defaultDatabasePath {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, defaultDatabasePath)
	}
	if cfg.AI.Provider != ProviderGemini || cfg.AI.Timeout != defaultAITimeout {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.Gemini.MaxRetries != 0 || cfg.OpenAI.MaxRetries != 0 {
		t.Errorf("generator retries are on by default: gemini %d, openai %d", cfg.Gemini.MaxRetries, cfg.OpenAI.MaxRetries)
	}
	if cfg.Chat.ChunkSize != 4000 || cfg.Chat.ProgressLimit != 5 {
		t.Errorf("Chat = %+v", cfg.Chat)
	}
	if len(cfg.Onboarding.NoneTokens) != 3 {
		t.Errorf("NoneTokens = %v", cfg.Onboarding.NoneTokens)
	}
	if cfg.Messages.CoachMale != "Ронни Коулман" || cfg.Messages.CoachFemale != "Дженет Лайог" {
		t.Errorf("coach names = %q, %q", cfg.Messages.CoachMale, cfg.Messages.CoachFemale)
	}
	if cfg.Labels.ConfirmReset != "ДА УДАЛИТЬ" {
		t.Errorf("ConfirmReset label = %q", cfg.Labels.ConfirmReset)
	}
	task, ok := cfg.Scheduler.Tasks["session_cleanup"]
	if !ok || !task.Enabled || task.Schedule == "" {
		t.Errorf("session_cleanup task = %+v, present %v", task, ok)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  token: file-token
ai:
  provider: openai
  timeout: 30s
openai:
  api_key: sk-test
  model: gpt-test
database:
  path: /tmp/coach.db
reset:
  cancel_tokens: ["stop"]
scheduler:
  tasks:
    sql_maintenance:
      enabled: false
`)
	t.Setenv("BOT_CHAT_CHUNK_SIZE", "1000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Telegram.Token != "file-token" {
		t.Errorf("Token = %q", cfg.Telegram.Token)
	}
	if cfg.AI.Provider != ProviderOpenAI || cfg.AI.Timeout != 30*time.Second {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.OpenAI.Model != "gpt-test" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if cfg.Database.Path != "/tmp/coach.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Chat.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want env override 1000", cfg.Chat.ChunkSize)
	}
	if len(cfg.Reset.CancelTokens) != 1 || cfg.Reset.CancelTokens[0] != "stop" {
		t.Errorf("CancelTokens = %v, want replaced list", cfg.Reset.CancelTokens)
	}
	if cfg.Scheduler.Tasks["sql_maintenance"].Enabled {
		t.Error("sql_maintenance should be disabled by the file")
	}
	if !cfg.Scheduler.Tasks["session_cleanup"].Enabled {
		t.Error("session_cleanup default should survive a partial tasks section")
	}
}

func TestLoadLegacyEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "legacy-token")
	t.Setenv("GEMINI_API_KEY", "legacy-key")
	t.Setenv("DATABASE_PATH", "legacy.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Telegram.Token != "legacy-token" || cfg.Gemini.APIKey != "legacy-key" || cfg.Database.Path != "legacy.db" {
		t.Errorf("legacy names not honoured: token=%q key=%q path=%q",
			cfg.Telegram.Token, cfg.Gemini.APIKey, cfg.Database.Path)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		missing bool
		want    error
	}{
		{
			name: "missing token",
			env:  map[string]string{"BOT_GEMINI_API_KEY": "key"},
			want: ErrValidation,
		},
		{
			name: "missing provider key",
			env:  map[string]string{"BOT_TELEGRAM_TOKEN": "token", "BOT_AI_PROVIDER": "openai"},
			want: ErrValidation,
		},
		{
			name: "unknown provider",
			env:  map[string]string{"BOT_TELEGRAM_TOKEN": "token", "BOT_AI_PROVIDER": "claude"},
			want: ErrValidation,
		},
		{
			name: "chunk size above telegram limit",
			env:  map[string]string{"BOT_TELEGRAM_TOKEN": "token", "BOT_GEMINI_API_KEY": "key"},
			file: "chat:\n  chunk_size: 5000\n",
			want: ErrValidation,
		},
		{
			name: "enabled task without schedule",
			env:  map[string]string{"BOT_TELEGRAM_TOKEN": "token", "BOT_GEMINI_API_KEY": "key"},
			file: "scheduler:\n  tasks:\n    custom:\n      enabled: true\n",
			want: ErrValidation,
		},
		{
			name:    "explicit file missing",
			env:     map[string]string{"BOT_TELEGRAM_TOKEN": "token", "BOT_GEMINI_API_KEY": "key"},
			missing: true,
			want:    ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			switch {
			case tt.missing:
				path = filepath.Join(t.TempDir(), "absent.yaml")
			case tt.file != "":
				path = writeConfig(t, tt.file)
			}

			_, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()
	labels := Default().Labels

	choices := []chat.Choice{
		chat.ChoiceGenderMale, chat.ChoiceGenderFemale,
		chat.ChoiceLevelBeginner, chat.ChoiceLevelIntermediate, chat.ChoiceLevelAdvanced,
		chat.ChoiceGoalFitness, chat.ChoiceGoalCompetition,
		chat.ChoiceLocationGym, chat.ChoiceLocationHome,
		chat.ChoiceWorkouts2, chat.ChoiceWorkouts3, chat.ChoiceWorkouts4, chat.ChoiceWorkouts5Plus,
		chat.ChoiceConfirmReset, chat.ChoiceCancel,
	}
	seen := make(map[string]chat.Choice)
	for _, c := range choices {
		label := labels.Choice(c)
		if label == "" {
			t.Errorf("Choice(%v) has no label", c)
			continue
		}
		if prev, dup := seen[label]; dup {
			t.Errorf("Choice(%v) and Choice(%v) share label %q", c, prev, label)
		}
		seen[label] = c
	}

	for _, c := range chat.MenuCommands() {
		if labels.Command(c) == "" {
			t.Errorf("Command(%v) has no label", c)
		}
	}
	if got := labels.Command(chat.CommandStart); got != "" {
		t.Errorf("Command(start) = %q, want no button", got)
	}
}

func TestRenderDefaults(t *testing.T) {
	t.Parallel()
	m := Default().Messages

	got, err := m.Render(m.Farewell, struct {
		Coach string
		Male  bool
	}{Coach: m.CoachFemale, Male: false})
	if err != nil {
		t.Fatalf("Render(farewell) error = %v", err)
	}
	if !strings.Contains(got, m.CoachFemale) || strings.Contains(got, "Yeah buddy") {
		t.Errorf("farewell = %q", got)
	}

	got, err = m.Render(m.MeasurementsUpdated, struct{ Measurements fitness.Measurements }{
		Measurements: fitness.Measurements{Chest: 100.5, Waist: 80, Hips: 95, Bicep: 35},
	})
	if err != nil {
		t.Fatalf("Render(measurements_updated) error = %v", err)
	}
	if !strings.Contains(got, "• Грудь: 100.5 см") || !strings.Contains(got, "• Бицепс: 35 см") {
		t.Errorf("measurements_updated = %q", got)
	}
}

func TestFormatSigned(t *testing.T) {
	t.Parallel()
	tests := map[float64]string{2.5: "+2.5", 0: "0", -1: "-1"}
	for in, want := range tests {
		if got := formatSigned(in); got != want {
			t.Errorf("formatSigned(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateRejectsBrokenTemplate(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Telegram.Token = "token"
	cfg.Gemini.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(defaults) error = %v", err)
	}

	cfg.Messages.Settings = "{{.Age"
	if err := cfg.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() error = %v, want ErrValidation", err)
	}
}

func TestValidateChunkSizeLeavesRoomForPartHeader(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		chunkSize int
		header    string
		wantErr   bool
	}{
		{name: "default", chunkSize: 4000, header: "📄 Часть %d/%d:\n\n"},
		{name: "telegram limit itself", chunkSize: 4096, header: "📄 Часть %d/%d:\n\n", wantErr: true},
		{name: "long header", chunkSize: 4000, header: strings.Repeat("-", 100) + "%d/%d", wantErr: true},
		{name: "long header with smaller chunks", chunkSize: 3900, header: strings.Repeat("-", 100) + "%d/%d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			cfg.Telegram.Token = "token"
			cfg.Gemini.APIKey = "key"
			cfg.Chat.ChunkSize = tt.chunkSize
			cfg.Telegram.PartHeader = tt.header

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}
