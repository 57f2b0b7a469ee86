package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/poseidoncap/refdata/pkg/config"
	"github.com/poseidoncap/refdata/pkg/db"
	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/endpoints"
	"github.com/poseidoncap/refdata/pkg/token"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the reference data API server",
	Long: `Run the reference data API server.

To run the server requires the environment variables REFDATA_TOKEN_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		tokenKeyB64, ok := os.LookupEnv("REFDATA_TOKEN_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "REFDATA_TOKEN_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		tokenKey, err := base64.StdEncoding.DecodeString(tokenKeyB64)
		if err != nil {
			fmt.Println("Bad REFDATA_TOKEN_KEY:", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Println("Unable to connect to DB:", err)
			os.Exit(1)
		}

		cfg := config.Get()
		provider := identity.NewGormProvider(database)

		// Seed the well-known roles so they exist before the first
		// registration or login.
		for _, role := range cfg.DefaultRoles {
			if err := provider.EnsureRole(role); err != nil {
				fmt.Printf("Unable to seed role %q: %v\n", role, err)
				os.Exit(1)
			}
		}

		tokens := token.NewManager(tokenKey, cfg.TokenTTL(), cfg.RememberMeTTL())

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, server.NewStores(database), provider, tokens, cfg, host, port)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
