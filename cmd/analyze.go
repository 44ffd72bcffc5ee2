package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Keerthi292/Emotion-Recognition-system/analyzers"
	"github.com/Keerthi292/Emotion-Recognition-system/orchestrator"
)

var (
	analyzeText   string
	analyzeAudio  string
	analyzeImage  string
	analyzeTop    int
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot analysis from the command line",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeText == "" && analyzeAudio == "" && analyzeImage == "" {
			return errors.New("nothing to analyze: provide --text, --audio or --image")
		}
		if analyzeTop > 0 {
			conf.Fusion.TopK = analyzeTop
		}

		pipe := orchestrator.NewDefault(conf, log)
		analysis, err := pipe.Analyze(cmd.Context(), analyzers.Input{
			Text:      analyzeText,
			AudioPath: analyzeAudio,
			ImagePath: analyzeImage,
		})
		if err != nil {
			return err
		}

		var out []byte
		switch analyzeFormat {
		case "yaml":
			out, err = yaml.Marshal(analysis)
		case "json":
			out, err = json.MarshalIndent(analysis, "", "  ")
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", analyzeFormat)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "text to analyze")
	analyzeCmd.Flags().StringVar(&analyzeAudio, "audio", "", "path to audio file (wav/mp3/m4a)")
	analyzeCmd.Flags().StringVar(&analyzeImage, "image", "", "path to facial image")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "keep only the top K combined emotions")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(analyzeCmd)
}
