package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/example/go-tencent-tts/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	envFile   string
	activeCfg config.Config
	cfgLoaded bool
)

const envHelp = `Environment:
  TENCENT_SECRET_ID          Tencent Cloud SecretId (required)
  TENCENT_SECRET_KEY         Tencent Cloud SecretKey (required)
  TENCENT_REGION             API region (default: ap-beijing)
  TENCENT_VOICE_TYPE         Preset voice type (default: 502003)
  TENCENT_FAST_VOICE_TYPE    One-sentence clone voice id; overrides TENCENT_VOICE_TYPE
  TENCENT_TTS_SPEED          Speed, -2..6 (default: 0)
  TENCENT_TTS_LANGUAGE       Primary language, 1=Chinese 2=English (default: 1)
  TENCENT_TTS_VOLUME         Volume, -10..10 (default: 0)
  TENCENTTTS_LOG_LEVEL       debug|info|warn|error (default: info)`

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "tencenttts",
		Short:         "Tencent Cloud text-to-speech command line",
		Long:          "Synthesize speech with the Tencent Cloud TextToVoice API and save it as WAV.\n\n" + envHelp,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			cfgLoaded = true
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before reading the environment (ignored if absent)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newSynthCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if !cfgLoaded {
		return config.Config{}, errors.New("configuration not loaded")
	}
	return activeCfg, nil
}
