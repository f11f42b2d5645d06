package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/example/go-tencent-tts/internal/audio"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the format of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			info, err := audio.Inspect(data)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "file: %s (%s)\n", args[0], humanize.Bytes(uint64(len(data))))
			_, _ = fmt.Fprintf(out, "sample rate: %d Hz\n", info.Format.SampleRate)
			_, _ = fmt.Fprintf(out, "channels: %d\n", info.Format.NumChannels)
			_, _ = fmt.Fprintf(out, "bit depth: %d\n", info.BitDepth)
			_, _ = fmt.Fprintf(out, "frames: %d\n", info.Frames)
			_, _ = fmt.Fprintf(out, "duration: %s\n", info.Duration)
			_, _ = fmt.Fprintf(out, "peak: %.3f\n", info.Peak)

			if strict {
				return audio.CheckFormat(info)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail unless the file is 24 kHz mono 16-bit PCM")

	return cmd
}
