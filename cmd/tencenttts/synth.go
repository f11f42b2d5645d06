package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/go-tencent-tts/internal/config"
	"github.com/example/go-tencent-tts/internal/tencent"
	"github.com/example/go-tencent-tts/internal/text"
	"github.com/example/go-tencent-tts/internal/tts"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type synthFlags struct {
	secretID  string
	secretKey string
	region    string
	voice     int64
	clone     string
	speed     int
	volume    int
	language  int
}

var newSynthesizer = func(p tts.Params, cc config.ClientConfig) (tts.Synthesizer, error) {
	return tencent.NewClient(p.Credentials, p.Region, cc)
}

func newSynthCmd() *cobra.Command {
	var f synthFlags

	cmd := &cobra.Command{
		Use:   "synth TEXT OUTPUT",
		Short: "Synthesize text to a WAV file",
		Long: "Synthesize TEXT (at most 150 Chinese characters and 500 Latin letters) and write\n" +
			"a 24 kHz mono 16-bit WAV to OUTPUT. Use '-' as TEXT to read from stdin.\n" +
			"Flags override the environment, which overrides built-in defaults.\n\n" + envHelp,
		Example: `  # preset voice
  tencenttts synth "你好" /tmp/out.wav

  # cloned voice
  TENCENT_FAST_VOICE_TYPE=xxx tencenttts synth "你好" /tmp/out.wav`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			input, err := readSynthText(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			params, err := tts.ResolveParams(explicitOptions(cmd.Flags(), f), cfg)
			if err != nil {
				return err
			}

			synth, err := newSynthesizer(params, cfg.Client)
			if err != nil {
				return err
			}

			svc := tts.NewService(synth, tts.WithLogger(slog.Default()))
			path, err := svc.SynthesizeToFile(cmd.Context(), input, args[1], params)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&f.region, "region", "", "API region (overrides "+config.EnvRegion+")")
	cmd.Flags().Int64Var(&f.voice, "voice", 0, "Preset voice type (overrides "+config.EnvVoiceType+")")
	cmd.Flags().StringVar(&f.clone, "clone-voice", "", "One-sentence clone voice id; takes precedence over any preset voice")
	cmd.Flags().IntVar(&f.speed, "speed", 0, "Speech speed, -2..6 (overrides "+config.EnvSpeed+")")
	cmd.Flags().IntVar(&f.volume, "volume", 0, "Volume, -10..10 (overrides "+config.EnvVolume+")")
	cmd.Flags().IntVar(&f.language, "language", 0, "Primary language, 1=Chinese 2=English (overrides "+config.EnvPrimaryLanguage+")")
	cmd.Flags().StringVar(&f.secretID, "secret-id", "", "SecretId (overrides "+config.EnvSecretID+")")
	cmd.Flags().StringVar(&f.secretKey, "secret-key", "", "SecretKey (overrides "+config.EnvSecretKey+")")

	return cmd
}

// explicitOptions keeps only the flags the user actually set so unset ones
// fall through to the configuration layer.
func explicitOptions(fs *pflag.FlagSet, f synthFlags) tts.Options {
	opts := tts.Options{
		SecretID:  f.secretID,
		SecretKey: f.secretKey,
		Region:    f.region,
		CloneID:   f.clone,
	}
	if fs.Changed("voice") {
		opts.VoiceType = &f.voice
	}
	if fs.Changed("speed") {
		opts.Speed = &f.speed
	}
	if fs.Changed("volume") {
		opts.Volume = &f.volume
	}
	if fs.Changed("language") {
		opts.PrimaryLanguage = &f.language
	}

	return opts
}

func readSynthText(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return arg, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

// describeError prefixes err with its failure class for the final
// diagnostic line.
func describeError(err error) string {
	var svcErr *tts.ServiceError
	switch {
	case errors.Is(err, config.ErrConfiguration):
		return "configuration error: " + err.Error()
	case errors.Is(err, text.ErrInvalid):
		return "invalid input: " + err.Error()
	case errors.As(err, &svcErr):
		return "service call failed: " + err.Error()
	default:
		return "unexpected error: " + err.Error()
	}
}
