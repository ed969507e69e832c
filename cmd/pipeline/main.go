package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "speech-coach",
		Short:         "Transcribe a speech recording, measure its delivery and score it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "config.yaml", "path to the YAML config file (missing file means defaults)")
	root.PersistentFlags().String("log-level", "", "override logging.level (debug, info, warn, error)")
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindEnv("config", "SPEECH_COACH_CONFIG")
	_ = v.BindEnv("gemini_api_key")
	_ = v.BindEnv("groq_api_key")

	root.AddCommand(
		newAnalyzeCmd(v),
		newServeCmd(v),
		newWatchCmd(v),
		newSampleCmd(v),
	)
	return root
}
