package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/barbchat/internal/config"
)

func TestConfigCommand_Path(t *testing.T) {
	env := newTestEnv(t, &fakeChatClient{})

	if err := env.run("config", "path"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want := filepath.Join(env.home, ".barbchat", "config.json")
	if got := strings.TrimSpace(env.stdout.String()); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestConfigCommand_Init(t *testing.T) {
	env := newTestEnv(t, &fakeChatClient{})

	if err := env.run("config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}

	path, _ := config.GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config file is not JSON: %v", err)
	}
	if cfg != config.DefaultConfig() {
		t.Errorf("written config = %+v, want defaults", cfg)
	}

	if err := env.run("config", "init"); err == nil {
		t.Error("second init without --force should fail")
	}
	if err := env.run("config", "init", "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestConfigCommand_Show(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   string
	}{
		{"key missing", "", config.APIKeyEnv + ": not set"},
		{"key present", "sk-ant-hidden", config.APIKeyEnv + ": set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, &fakeChatClient{})
			t.Setenv(config.APIKeyEnv, tt.apiKey)

			if err := env.run("config", "show"); err != nil {
				t.Fatalf("run() error = %v", err)
			}

			out := env.stdout.String()
			if !strings.Contains(out, `"relay_url"`) {
				t.Errorf("expected JSON config, got %q", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q", tt.want)
			}
			if !strings.Contains(out, "persona: "+config.Barb.Name+" ("+config.Barb.Description+")") {
				t.Errorf("output missing persona line: %q", out)
			}
			if tt.apiKey != "" && strings.Contains(out, tt.apiKey) {
				t.Error("the API key must not be printed")
			}
		})
	}
}

func TestConfigCommand_Themes(t *testing.T) {
	env := newTestEnv(t, &fakeChatClient{})

	if err := env.run("config", "themes"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, name := range []string{"tokyonight", "catppuccin", "nord", "dracula", "plain"} {
		if !strings.Contains(env.stdout.String(), name) {
			t.Errorf("themes output missing %q", name)
		}
	}
}
