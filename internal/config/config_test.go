package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"OLLAMA_BASE_URL", "OLLAMA_MODEL", "DB_PATH", "API_PORT",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "PROBE_INTERVAL", "COMPLETION_TIMEOUT",
}

// isolateEnv clears the config variables for the duration of the test and runs it
// from an empty directory so no .env file is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()

	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	originalWd, _ := os.Getwd()
	_ = os.Chdir(t.TempDir())

	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "default values",
			setupEnv: func(t *testing.T) {},
			checkConfig: func(cfg *Config) bool {
				return cfg.OllamaBaseURL == "http://localhost:11434" &&
					cfg.OllamaModel == "llama3.2:3b" &&
					cfg.DBPath == "./data/yukti.db" &&
					cfg.APIPort == "8000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.LogFile == "./logs/yukti.log" &&
					cfg.ProbeInterval == 30*time.Second &&
					cfg.CompletionTimeout == 60*time.Second
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				setEnv("OLLAMA_BASE_URL", "http://gpu-box:11434/")
				setEnv("OLLAMA_MODEL", "mistral:7b")
				setEnv("API_PORT", "9001")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "JSON")
				setEnv("PROBE_INTERVAL", "10s")
				setEnv("COMPLETION_TIMEOUT", "2m")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.OllamaBaseURL == "http://gpu-box:11434" &&
					cfg.OllamaModel == "mistral:7b" &&
					cfg.APIPort == "9001" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.ProbeInterval == 10*time.Second &&
					cfg.CompletionTimeout == 2*time.Minute
			},
		},
		{
			name: "WARNING level spelling",
			setupEnv: func(t *testing.T) {
				setEnv("LOG_LEVEL", "WARNING")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LogLevel == slog.LevelWarn
			},
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			setupEnv: func(t *testing.T) {
				setEnv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "invalid probe interval",
			setupEnv: func(t *testing.T) {
				setEnv("PROBE_INTERVAL", "often")
			},
			wantErr: true,
		},
		{
			name: "zero completion timeout",
			setupEnv: func(t *testing.T) {
				setEnv("COMPLETION_TIMEOUT", "0s")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolateEnv(t)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test", "db.db")
	setEnv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check that directory was created
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	isolateEnv(t)

	if err := os.WriteFile(".env", []byte("OLLAMA_MODEL=phi3:mini\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OllamaModel != "phi3:mini" {
		t.Errorf("Load() OllamaModel = %q, want phi3:mini", cfg.OllamaModel)
	}
	// godotenv sets the process env; clear it for the next test
	unsetEnv("OLLAMA_MODEL")
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name: "env var set",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "set-value")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name: "env var not set",
			setupEnv: func() {
				unsetEnv("TEST_ENV_VAR")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name: "empty env var uses default",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			if got := getEnv(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stdout, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stdout, &file, "text", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("chat request processed", "reply_length", 12)

	if strings.Contains(stdout.String(), "hidden") || strings.Contains(file.String(), "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(stdout.String(), "msg=\"chat request processed\"") {
		t.Errorf("stdout = %q, want text record", stdout.String())
	}
	if !strings.Contains(file.String(), `"msg":"chat request processed"`) {
		t.Errorf("file = %q, want JSON record", file.String())
	}
}

func TestSetupLogger_WritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "yukti.log")
	cfg := &Config{LogLevel: slog.LevelInfo, LogFormat: "json", LogFile: logFile}

	logger, cleanup := SetupLogger(cfg)
	logger.Info("started")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup() error = %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"started"`) {
		t.Errorf("log file = %q, want started record", data)
	}
}
