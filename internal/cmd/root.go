package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/NikitArias/online-store-loyalty/internal/api"
	"github.com/NikitArias/online-store-loyalty/internal/cart"
	"github.com/NikitArias/online-store-loyalty/internal/config"
	"github.com/NikitArias/online-store-loyalty/internal/localstore"
	"github.com/NikitArias/online-store-loyalty/internal/models"
	"github.com/NikitArias/online-store-loyalty/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "store",
	Short: "Online Store - shopping client with loyalty bonuses",
	Long: `Online Store is a client for the store backend: browse the catalog,
manage your cart, place orders, review products and track loyalty
achievements. Administrators manage the catalog, orders and users
through the admin subcommands.

The session survives between runs: log in once and subsequent commands
reuse the saved token until you log out.`,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the wired client stack every subcommand runs against.
type app struct {
	cfg     *config.Config
	api     *api.Client
	cart    *cart.Synchronizer
	session *session.Store
	logger  *slog.Logger
}

// newApp loads configuration, wires the stack and restores the persisted
// session. The session restores before anything touches the cart: the cart
// only hydrates with a token the session hands it.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout())

	storage, err := localstore.Open(cfg.State.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local state: %w", err)
	}

	sync := cart.New(client, logger)
	sess := session.New(client, sync, storage, logger)
	sess.Restore(ctx)

	return &app{cfg: cfg, api: client, cart: sync, session: sess, logger: logger}, nil
}

// token returns the session token or ErrNotLoggedIn, so commands fail
// locally instead of bouncing off the backend with a 401.
func (a *app) token() (string, error) {
	if t := a.session.Token(); t != "" {
		return t, nil
	}
	return "", fmt.Errorf("please log in first: %w", models.ErrNotLoggedIn)
}

// reportErr prints a request failure, swapping in the offline banner when
// the backend never answered.
func reportErr(err error) error {
	if api.IsOffline(err) {
		fmt.Println("📡 No connection to the server. Check that the backend is running and try again.")
		return nil
	}
	return err
}
