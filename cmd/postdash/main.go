// postdash is a terminal client for the reqres.in mock auth API and the
// jsonplaceholder posts feed: log in, browse posts in a table, and
// view/edit/delete them in memory. Run without arguments to start the
// interactive dashboard.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"postdash/cmd/postdash/dash"
	"postdash/internal/api"
	"postdash/internal/config"
	"postdash/internal/logging"
	"postdash/internal/session"
	"postdash/internal/store"

	"github.com/spf13/cobra"
)

const version = "v1.0.0"

var (
	// Global flags
	configPath string
	debug      bool

	cfg  *config.Config
	sess *session.Manager
)

// rootCmd launches the interactive dashboard.
var rootCmd = &cobra.Command{
	Use:   "postdash",
	Short: "postdash - a terminal dashboard for the mock posts API",
	Long: `postdash is a terminal client for the reqres.in mock auth API and the
jsonplaceholder posts feed.

Log in with the reqres.in fixture account (eve.holt@reqres.in), browse
the post list, and view, edit, or delete posts. Edits and deletes live
only in memory; nothing is written back to the server.

Run without arguments to start the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if debug {
			cfg.Debug = true
		}

		if err := logging.Initialize(config.DefaultDir(), cfg.Debug); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		sess, err = session.NewManager(config.DefaultDir())
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dash.Run(dash.Config{
			Client:  newClient(),
			Session: sess,
			Theme:   cfg.Theme,
			Version: version,
		})
	},
}

// loginCmd authenticates without the TUI and persists the session.
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimSpace(line)
		}

		result, err := newClient().Login(context.Background(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := sess.Save(result.Token); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		fmt.Println("Logged in.")
		return nil
	},
}

// logoutCmd clears the stored session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// whoamiCmd prints the profile for the active session.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sess.Active() {
			return fmt.Errorf("not logged in")
		}

		profile, err := newClient().FetchProfile(context.Background())
		if err != nil {
			// Profile failures degrade to the fixed fallback identity.
			fb := api.FallbackProfile()
			profile = &fb
		}
		fmt.Println(profile.FullName())
		fmt.Println(profile.Avatar)
		return nil
	},
}

// postsCmd prints the post table to stdout.
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Fetch and print the post list",
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := newClient().FetchPosts(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}

		for _, p := range posts {
			fmt.Printf("%s\t%s\t%s\n",
				strconv.Itoa(p.ID),
				store.Truncate(p.Title, 50),
				store.Truncate(p.Body, 80),
			)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the postdash version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("postdash", version)
	},
}

func newClient() *api.Client {
	return api.NewClient(api.Config{
		AuthBaseURL:  cfg.Auth.BaseURL,
		PostsBaseURL: cfg.Posts.BaseURL,
		Retry: api.RetryPolicy{
			MaxRetries: 1,
			Header:     cfg.Auth.KeyHeader,
			Key:        cfg.Auth.APIKey,
		},
		Timeout:      cfg.AuthTimeout(),
		PostsTimeout: cfg.PostsTimeout(),
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	loginCmd.Flags().String("password", "", "password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
