package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pandey-solutions/saves/pkg/client"
)

var (
	cfgFile      string
	outputFormat string
	noColor      bool
	serverURL    string
	apiClient    *client.Client
)

// Commands that never talk to the API
var offlineCommands = map[string]bool{
	"config":   true,
	"validate": true,
	"template": true,
	"analyze":  true,
}

var rootCmd = &cobra.Command{
	Use:   "saves",
	Short: "Saves CLI - AWS cost optimization demo",
	Long: `Saves CLI connects an AWS account to Saves through a read-only IAM role
and shows the savings dashboard generated for it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		for c := cmd; c != nil; c = c.Parent() {
			if offlineCommands[c.Name()] {
				return nil
			}
		}
		return initClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.saves/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable animations and colored output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newConnectCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".saves"), nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		_ = os.MkdirAll(dir, 0700)
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SAVES")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("retries", 2)

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	backoff := heimdall.NewConstantBackoff(500*time.Millisecond, 100*time.Millisecond)
	httpClient := httpclient.NewClient(
		httpclient.WithHTTPTimeout(timeout),
		httpclient.WithRetryCount(viper.GetInt("retries")),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
	)

	apiClient = client.NewClient(client.Config{
		BaseURL:    url,
		HTTPClient: httpClient,
		Store:      newConfigStore(),
	})
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
