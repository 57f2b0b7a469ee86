package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/poseidoncap/refdata/pkg/db"
	"github.com/poseidoncap/refdata/pkg/rules"
)

// rulesWatchCmd represents the rules watch command
var rulesWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a rules file and reload it when it changes",
	Long: `Watch a rules file and reload it when it changes.

Every write to the file re-applies its rule definitions. A failed load
is reported and the previous definitions stay in place.

Example:
  refdatactl rules watch /etc/refdata/rules.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchRules(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch rules: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rulesCmd.AddCommand(rulesWatchCmd)
}

func watchRules(filename string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	loader := rules.NewLoader(database)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for rule changes\n", filename)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] File modified, reloading rules...\n", time.Now().Format(time.RFC3339))

				result, err := loader.LoadFile(filename)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
					continue
				}
				fmt.Printf("Rules loaded: %d created, %d updated\n", len(result.Created), len(result.Updated))

				// Editors replace files on save, which drops the watch
				_ = watcher.Add(filename)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)

		case sig := <-sigChan:
			fmt.Printf("Received %v, shutting down\n", sig)
			return nil
		}
	}
}
