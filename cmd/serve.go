package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jsphweid/scorepad/api"
	"github.com/jsphweid/scorepad/collab"
	"github.com/jsphweid/scorepad/constants"
	"github.com/jsphweid/scorepad/store"
	"github.com/spf13/cobra"
)

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the HTTP API",
	Long:  `Serves parsing, export and composition storage over HTTP, plus a websocket per composition for live editing.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := OpenStore()
		cobra.CheckErr(err)
		serve(s)
	},
}

// OpenStore picks the composition store from the environment.
func OpenStore() (store.Store, error) {
	switch constants.GetStore() {
	case "dynamo":
		return store.NewDynamo(constants.GetDynamoRegion(), constants.GetDynamoEndpoint(), constants.GetDynamoTable())
	case "memory":
		if path := constants.GetDataPath(); path != "" {
			return store.OpenMemory(path)
		}
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store %q", constants.GetStore())
}

// NewHandler wires the API, its collaboration hub and CORS around s.
func NewHandler(s store.Store) http.Handler {
	hub := collab.NewHub(api.Autosave(s), constants.GetSaveDebounce())
	return api.New(s, hub).Handler(constants.GetCORSOrigins())
}

func serve(s store.Store) {
	if port == "" {
		port = constants.GetPort()
	}
	fmt.Println("Running server on port:", port, "...")
	log.Fatal(http.ListenAndServe(":"+port, NewHandler(s)))
}
