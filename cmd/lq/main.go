package main

import (
	"fmt"
	"os"

	"github.com/alfredjeanlab/labelq/internal/client"
	"github.com/alfredjeanlab/labelq/internal/config"
	"github.com/alfredjeanlab/labelq/internal/events"
	"github.com/alfredjeanlab/labelq/internal/ui"
	"github.com/spf13/cobra"
)

// env holds the environment-sourced settings; named remotes fill the gaps.
var env = config.FromEnv()

var (
	httpURL    string
	authToken  string
	datasetID  string
	jsonOutput bool
	noColor    bool

	recordsClient client.RecordsClient
)

func defaultHTTPURL() string {
	if env.HTTPURL != "" {
		return env.HTTPURL
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return config.DefaultHTTPURL
}

func defaultToken() string {
	if env.AuthToken != "" {
		return env.AuthToken
	}
	return activeRemoteToken()
}

func defaultNATSURL() string {
	if env.NATSURL != "" {
		return env.NATSURL
	}
	return activeRemoteNATSURL()
}

// newPublisher returns a NATS publisher when one is configured, otherwise
// the no-op publisher.
func newPublisher() (events.Publisher, error) {
	url := defaultNATSURL()
	if url == "" {
		return &events.NoopPublisher{}, nil
	}
	return events.NewNATSPublisher(url)
}

var rootCmd = &cobra.Command{
	Use:   "lq <command>",
	Short: "CLI client for the annotation queue service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			ui.ForceNoColor()
		}
		recordsClient = client.NewHTTPClient(httpURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if recordsClient != nil {
			recordsClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "url", defaultHTTPURL(), "HTTP server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token for the server")
	rootCmd.PersistentFlags().StringVarP(&datasetID, "dataset", "d", env.DatasetID, "dataset id")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "records", Title: "Records:"},
		&cobra.Group{ID: "workflows", Title: "Workflows:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(discardCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(remoteCmd)
}

// requireDataset validates the dataset flag for commands that need it.
func requireDataset() error {
	if datasetID == "" {
		return fmt.Errorf("a dataset id is required (--dataset or LABELQ_DATASET_ID)")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
