package command

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/haojie06/venice-image-cli/internal/logger"
	"github.com/haojie06/venice-image-cli/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local HTTP facade over the image generation API",
	Long: `serve exposes the image generation client over a local HTTP server:

  GET  /models          list available image generation models
  POST /image/generate  submit a generation request

Requests can optionally be gated on an API-KEY header via server.apiKey.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClientFromConfig()
		if err != nil {
			return err
		}
		host := viper.GetString("server.host")
		port := viper.GetString("server.port")
		logger.Infof("facade is starting, host: %s, port: %s", host, port)
		return server.Start(host, port, viper.GetString("server.apiKey"), client)
	},
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "address to listen on")
	serveCmd.Flags().String("port", "9000", "port to listen on")
	serveCmd.Flags().String("api-key", "", "require this API-KEY header on facade requests")
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.apiKey", serveCmd.Flags().Lookup("api-key"))
}
