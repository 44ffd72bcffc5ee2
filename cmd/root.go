// Package cmd wires the command line interface.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/Keerthi292/Emotion-Recognition-system/config"
	"github.com/Keerthi292/Emotion-Recognition-system/logging"
)

var (
	cfgFile string

	conf *cfg.Root
	log  *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:           "emotion-pipeline",
	Short:         "Multimodal emotion detection pipeline",
	Long:          "Fuses text, audio and facial emotion signals into one consensus distribution.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = cfg.Load(cfgFile)
		if err != nil {
			return err
		}
		log = logging.New(conf.Pipeline.LogLevel)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
}
