package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

// clearTencentEnv blanks every environment key Load reads so the host
// environment cannot leak into assertions.
func clearTencentEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		EnvSecretID, EnvSecretKey, EnvRegion, EnvVoiceType, EnvFastVoiceType,
		EnvSpeed, EnvPrimaryLanguage, EnvVolume,
		"TENCENTTTS_LOG_LEVEL", "TENCENTTTS_CLIENT_ENDPOINT", "TENCENTTTS_CLIENT_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

// --- DefaultConfig ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Client.Region != "ap-beijing" {
		t.Errorf("Client.Region = %q; want %q", cfg.Client.Region, "ap-beijing")
	}

	if cfg.TTS.VoiceType != 502003 {
		t.Errorf("TTS.VoiceType = %d; want 502003", cfg.TTS.VoiceType)
	}

	if cfg.TTS.Speed != 0 || cfg.TTS.Volume != 0 {
		t.Errorf("Speed/Volume = %d/%d; want 0/0", cfg.TTS.Speed, cfg.TTS.Volume)
	}

	if cfg.TTS.PrimaryLanguage != 1 {
		t.Errorf("TTS.PrimaryLanguage = %d; want 1", cfg.TTS.PrimaryLanguage)
	}

	if cfg.TTS.FastVoiceType != "" {
		t.Errorf("TTS.FastVoiceType = %q; want empty", cfg.TTS.FastVoiceType)
	}

	if cfg.Credentials != (CredentialsConfig{}) {
		t.Error("default config must not carry credentials")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "info")
	}
}

// --- RegisterFlags ---

func TestRegisterFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())

	checks := []struct {
		flag string
		want string
	}{
		{"log-level", "info"},
		{"client-endpoint", "tts.tencentcloudapi.com"},
		{"client-timeout-seconds", "60"},
	}

	for _, c := range checks {
		f := fs.Lookup(c.flag)
		if f == nil {
			t.Errorf("flag %q not registered", c.flag)
			continue
		}

		if f.DefValue != c.want {
			t.Errorf("flag %q default = %q; want %q", c.flag, f.DefValue, c.want)
		}
	}
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	clearTencentEnv(t)

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Cmd:      newFlagBinder(defaults),
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg != defaults {
		t.Errorf("Load() = %+v; want defaults %+v", cfg, defaults)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	clearTencentEnv(t)

	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)

	err := binder.fs.Parse([]string{
		"--log-level=debug",
		"--client-timeout-seconds=5",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "debug")
	}

	if cfg.Client.TimeoutSeconds != 5 {
		t.Errorf("Client.TimeoutSeconds = %d; want 5", cfg.Client.TimeoutSeconds)
	}
}

func TestLoad_TencentEnvKeys(t *testing.T) {
	clearTencentEnv(t)
	t.Setenv(EnvSecretID, "AKIDexample")
	t.Setenv(EnvSecretKey, "secret")
	t.Setenv(EnvRegion, "ap-shanghai")
	t.Setenv(EnvVoiceType, "101001")
	t.Setenv(EnvFastVoiceType, "clone-abc")
	t.Setenv(EnvSpeed, "2")
	t.Setenv(EnvPrimaryLanguage, "2")
	t.Setenv(EnvVolume, "-3")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Credentials: CredentialsConfig{SecretID: "AKIDexample", SecretKey: "secret"},
		Client: ClientConfig{
			Region:         "ap-shanghai",
			Endpoint:       "tts.tencentcloudapi.com",
			TimeoutSeconds: 60,
		},
		TTS: TTSConfig{
			VoiceType:       101001,
			FastVoiceType:   "clone-abc",
			Speed:           2,
			Volume:          -3,
			PrimaryLanguage: 2,
		},
		LogLevel: "info",
	}
	if cfg != want {
		t.Errorf("Load() = %+v; want %+v", cfg, want)
	}
}

func TestLoad_PrefixedEnvOverride(t *testing.T) {
	clearTencentEnv(t)
	t.Setenv("TENCENTTTS_LOG_LEVEL", "warn")
	t.Setenv("TENCENTTTS_CLIENT_ENDPOINT", "tts.ap-guangzhou.tencentcloudapi.com")

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(defaults), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "warn")
	}

	if cfg.Client.Endpoint != "tts.ap-guangzhou.tencentcloudapi.com" {
		t.Errorf("Client.Endpoint = %q", cfg.Client.Endpoint)
	}
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	clearTencentEnv(t)
	t.Setenv(EnvSpeed, "fast")

	_, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err == nil {
		t.Fatal("Load() = nil; want error for non-numeric speed")
	}

	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error %v should classify as ErrConfiguration", err)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearTencentEnv(t)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "tencenttts.yaml")

	content := `
log_level: error
client:
  region: ap-guangzhou
tts:
  voice_type: 101002
  speed: 1
`

	err := os.WriteFile(cfgFile, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: cfgFile, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "error")
	}

	if cfg.Client.Region != "ap-guangzhou" {
		t.Errorf("Client.Region = %q; want %q", cfg.Client.Region, "ap-guangzhou")
	}

	if cfg.TTS.VoiceType != 101002 || cfg.TTS.Speed != 1 {
		t.Errorf("TTS = %+v", cfg.TTS)
	}

	if cfg.TTS.PrimaryLanguage != 1 {
		t.Errorf("unset keys should keep defaults, PrimaryLanguage = %d", cfg.TTS.PrimaryLanguage)
	}
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	clearTencentEnv(t)
	t.Setenv(EnvRegion, "ap-chengdu")

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "tencenttts.yaml")
	if err := os.WriteFile(cfgFile, []byte("client:\n  region: ap-guangzhou\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: cfgFile, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Client.Region != "ap-chengdu" {
		t.Errorf("Client.Region = %q; want %q", cfg.Client.Region, "ap-chengdu")
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bad.yaml")
	// Write invalid YAML
	err := os.WriteFile(cfgFile, []byte(":\t:bad yaml:::"), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = Load(LoadOptions{
		ConfigFile: cfgFile,
		Defaults:   DefaultConfig(),
	})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Load() = %v; want ErrConfiguration for invalid config file", err)
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: "/nonexistent/path/tencenttts.yaml",
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("Load() = nil; want error for missing explicit config file")
	}
}

// --- LoadEnvFile ---

func TestLoadEnvFile(t *testing.T) {
	t.Run("exports variables without overriding", func(t *testing.T) {
		t.Setenv(EnvSecretID, "from-process")
		t.Setenv(EnvSecretKey, "")
		os.Unsetenv(EnvSecretKey)

		path := filepath.Join(t.TempDir(), ".env")
		content := EnvSecretID + "=from-file\n" + EnvSecretKey + "=file-key\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("LoadEnvFile: %v", err)
		}

		if got := os.Getenv(EnvSecretID); got != "from-process" {
			t.Errorf("%s = %q; want process value kept", EnvSecretID, got)
		}

		if got := os.Getenv(EnvSecretKey); got != "file-key" {
			t.Errorf("%s = %q; want %q", EnvSecretKey, got, "file-key")
		}
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
			t.Errorf("LoadEnvFile(missing) = %v; want nil", err)
		}
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		if err := LoadEnvFile(""); err != nil {
			t.Errorf("LoadEnvFile(\"\") = %v; want nil", err)
		}
	})
}

// --- CheckCredentials ---

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name string
		in   CredentialsConfig
		want []string
	}{
		{"both present", CredentialsConfig{SecretID: "id", SecretKey: "key"}, nil},
		{"both missing", CredentialsConfig{}, []string{EnvSecretID, EnvSecretKey}},
		{"id missing", CredentialsConfig{SecretKey: "key"}, []string{EnvSecretID}},
		{"key blank", CredentialsConfig{SecretID: "id", SecretKey: "  "}, []string{EnvSecretKey}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCredentials(tt.in)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				return
			}

			var missing *MissingCredentialsError
			if !errors.As(err, &missing) {
				t.Fatalf("expected *MissingCredentialsError, got %v", err)
			}

			if len(missing.Keys) != len(tt.want) {
				t.Fatalf("Keys = %v; want %v", missing.Keys, tt.want)
			}

			for i := range tt.want {
				if missing.Keys[i] != tt.want[i] {
					t.Errorf("Keys[%d] = %q; want %q", i, missing.Keys[i], tt.want[i])
				}
			}

			if !errors.Is(err, ErrConfiguration) {
				t.Error("MissingCredentialsError should classify as ErrConfiguration")
			}
		})
	}
}

// --- ParseLogLevel ---

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}
