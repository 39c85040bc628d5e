// Package cmd contains all CLI commands for shopctl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/earthen/shopctl/credentials/filestore"
	"github.com/earthen/shopctl/gateway"
	"github.com/earthen/shopctl/internal/config"
	clienterrors "github.com/earthen/shopctl/internal/errors"
	"github.com/earthen/shopctl/internal/output"
	"github.com/earthen/shopctl/session"
)

var (
	cfgFile string
	verbose bool
	apiURL  string
	cfg     *config.Config
	gw      *gateway.Gateway
	ctrl    *session.Controller
	printer *output.Printer
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Earthen storefront CLI",
	Long: `shopctl is a command-line client for the Earthen storefront API.

It keeps your login session and cart badge in sync with the store across
invocations, with the credential held in a local file.

Example usage:
  shopctl login alice          # Authenticate and restore your cart badge
  shopctl products list        # Browse the catalog
  shopctl cart add 3 --qty 2   # Put two of product 3 in the cart
  shopctl checkout --full-name "Alice" ...
  shopctl orders               # Order history, newest first`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initSession()
	},
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("shopctl", "cybermedium", true).Print()
		fmt.Println()
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .shopctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "storefront API base URL")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url"))
}

// initSession loads configuration and wires the credential store,
// gateway and session controller. The controller restores any stored
// session synchronously here; a corrupt slot degrades to anonymous.
func initSession() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if apiURL != "" {
		cfg.API.URL = apiURL
	}

	level := zerolog.WarnLevel
	if verbose || cfg.Logging.Level == "debug" {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	printer = output.NewPrinter(cfg.Output.Colors)

	store := filestore.New(cfg.Credentials.File)
	gw = gateway.New(cfg.API.URL, store, gateway.WithHTTPClient(httpClientFromConfig()))

	ctrl, err = session.NewController(store, gw)
	if err != nil {
		return fmt.Errorf("initializing session: %w", err)
	}

	log.Debug().
		Str("api_url", cfg.API.URL).
		Str("credential_file", cfg.Credentials.File).
		Str("state", ctrl.State().String()).
		Msg("session initialized")
	return nil
}

func httpClientFromConfig() *http.Client {
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// requestContext returns a context bounded by the configured API timeout.
func requestContext() (context.Context, context.CancelFunc) {
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// requireLogin fails fast for commands that only make sense when
// authenticated, before any network round trip.
func requireLogin() error {
	if ctrl.State() != session.StateAuthenticated {
		return clienterrors.Wrapf(clienterrors.ErrNotAuthenticated, "run %q first", "shopctl login")
	}
	return nil
}

// reportAPIError prints the most useful rendering of a gateway failure:
// field-level messages for validation errors, the remote detail message
// otherwise.
func reportAPIError(err error) {
	var validationErr *gateway.ValidationError
	if errors.As(err, &validationErr) {
		printer.FieldErrors(validationErr.Fields)
		return
	}

	var reqErr *gateway.RequestError
	if errors.As(err, &reqErr) && reqErr.Status != 0 {
		printer.Error("%s", reqErr.Detail())
	}
}
