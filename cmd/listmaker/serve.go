// Serve command: run the HTTP API.
package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/listmaker/internal/server"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the listmaker HTTP API",
	Long: `Run the listmaker HTTP API. Pending migrations are applied and all
lists are loaded before the server starts listening.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, registry, err := openRepository()
		if err != nil {
			return err
		}

		listen := flagListen
		if listen == "" {
			listen = configListen
		}

		fmt.Printf("Loaded %d lists from storage.\n", len(repo.GetAll()))
		fmt.Printf("Listening on %s\n", listen)
		return http.ListenAndServe(listen, server.New(repo, registry, nil))
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (default: config.yaml listen or :8080)")
}
