package main

import (
	"context"
	"fmt"
	"os"

	"tztracker/internal/cli"
	"tztracker/internal/config"
	"tztracker/internal/repository/sqlite"
)

func main() {
	cfg, err := config.NewLoaderWithFile(config.DefaultConfigPath()).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The repository is opened after flags are applied, so --db-dir and
	// --db-filename take effect.
	env := config.GetEnvironment()
	open := func(ctx context.Context, cfg *config.Config) (sqlite.Repository, error) {
		return config.NewRepositoryFactory(env, cfg).CreateRepository(ctx)
	}

	root := cli.NewRootCommand(cfg, open)
	if err := root.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
