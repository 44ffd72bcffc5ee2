package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Keerthi292/Emotion-Recognition-system/orchestrator"
	"github.com/Keerthi292/Emotion-Recognition-system/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis server",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe := orchestrator.NewDefault(conf, log)
		srv := server.New(conf, pipe, log)
		log.WithField("module", "server").Infof("%s %s listening on %s",
			conf.Pipeline.Name, conf.Pipeline.Version, conf.Server.Addr)
		return srv.Listen()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
