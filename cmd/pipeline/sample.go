package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nguyentantai21042004/speech-coach/internal/audio"
	"github.com/nguyentantai21042004/speech-coach/internal/config"
)

func newSampleCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "sample [path]",
		Short: "Write a synthetic speech-like WAV for trying the pipeline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "sample.wav"
			if len(args) == 1 {
				path = args[0]
			}

			cfg, err := config.LoadOrDefault(v.GetString("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			sr := cfg.FFmpeg.SampleRate
			if err := audio.WriteWAV(path, audio.SampleSpeech(sr), sr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d Hz mono)\n", path, sr)
			return nil
		},
	}
}
