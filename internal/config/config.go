package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment keys read by Load in addition to the TENCENTTTS_ prefix.
const (
	EnvSecretID        = "TENCENT_SECRET_ID"
	EnvSecretKey       = "TENCENT_SECRET_KEY"
	EnvRegion          = "TENCENT_REGION"
	EnvVoiceType       = "TENCENT_VOICE_TYPE"
	EnvFastVoiceType   = "TENCENT_FAST_VOICE_TYPE"
	EnvSpeed           = "TENCENT_TTS_SPEED"
	EnvPrimaryLanguage = "TENCENT_TTS_LANGUAGE"
	EnvVolume          = "TENCENT_TTS_VOLUME"
)

type Config struct {
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Client      ClientConfig      `mapstructure:"client"`
	TTS         TTSConfig         `mapstructure:"tts"`
	LogLevel    string            `mapstructure:"log_level"`
}

type CredentialsConfig struct {
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
}

type ClientConfig struct {
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type TTSConfig struct {
	VoiceType       int64  `mapstructure:"voice_type"`
	FastVoiceType   string `mapstructure:"fast_voice_type"`
	Speed           int    `mapstructure:"speed"`
	Volume          int    `mapstructure:"volume"`
	PrimaryLanguage int    `mapstructure:"primary_language"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Client: ClientConfig{
			Region:         "ap-beijing",
			Endpoint:       "tts.tencentcloudapi.com",
			TimeoutSeconds: 60,
		},
		TTS: TTSConfig{
			VoiceType:       502003,
			Speed:           0,
			Volume:          0,
			PrimaryLanguage: 1,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("client-endpoint", defaults.Client.Endpoint, "TextToVoice API endpoint host")
	fs.Int("client-timeout-seconds", defaults.Client.TimeoutSeconds, "HTTP request timeout in seconds")
}

// LoadEnvFile exports the variables of a dotenv file into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: load env file %q: %w", ErrConfiguration, path, err)
	}

	return nil
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("TENCENTTTS")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read config file: %w", ErrConfiguration, err)
		}
	} else {
		v.SetConfigName("tencenttts")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("%w: read config file: %w", ErrConfiguration, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode config: %w", ErrConfiguration, err)
	}

	return cfg, nil
}

var envBindings = map[string]string{
	"credentials.secret_id":  EnvSecretID,
	"credentials.secret_key": EnvSecretKey,
	"client.region":          EnvRegion,
	"tts.voice_type":         EnvVoiceType,
	"tts.fast_voice_type":    EnvFastVoiceType,
	"tts.speed":              EnvSpeed,
	"tts.primary_language":   EnvPrimaryLanguage,
	"tts.volume":             EnvVolume,
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("credentials.secret_id", c.Credentials.SecretID)
	v.SetDefault("credentials.secret_key", c.Credentials.SecretKey)
	v.SetDefault("client.region", c.Client.Region)
	v.SetDefault("client.endpoint", c.Client.Endpoint)
	v.SetDefault("client.timeout_seconds", c.Client.TimeoutSeconds)
	v.SetDefault("tts.voice_type", c.TTS.VoiceType)
	v.SetDefault("tts.fast_voice_type", c.TTS.FastVoiceType)
	v.SetDefault("tts.speed", c.TTS.Speed)
	v.SetDefault("tts.volume", c.TTS.Volume)
	v.SetDefault("tts.primary_language", c.TTS.PrimaryLanguage)
	v.SetDefault("log_level", c.LogLevel)
}

var flagBindings = map[string]string{
	"log_level":              "log-level",
	"client.endpoint":        "client-endpoint",
	"client.timeout_seconds": "client-timeout-seconds",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagBindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	return nil
}
