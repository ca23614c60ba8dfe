package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"doxcer/internal/app"
	"doxcer/internal/cli"
	"doxcer/internal/config"
	"doxcer/internal/definitions"
	"doxcer/internal/docs"
	"doxcer/internal/llm"
	"doxcer/internal/mass"
	"doxcer/internal/pipeline"
	"doxcer/internal/secrets"
)

var rootCmd = &cobra.Command{
	Use:   "doxcer [selector] <path/to/notebook>",
	Short: "Markdown documentation generator for data-platform notebooks",
	// Selector flags are single-dash tokens like -fabric; pflag would shred
	// them into shorthand clusters, so parsing is done by internal/cli.
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		inv, err := cli.Parse(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprint(os.Stderr, cli.Usage())
			os.Exit(1)
		}
		if inv.ShowHelp {
			fmt.Print(cli.Usage())
			return
		}

		ctx := context.Background()
		deps, cleanup, err := buildDeps(ctx)
		if err != nil {
			fatal(err)
		}
		defer cleanup()

		result, err := pipeline.Run(ctx, deps, pipeline.RunInput{Path: inv.Path, Profile: inv.Profile})
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Saved documentation to: %s\n", result.OutputPath)
	},
}

var massCmd = &cobra.Command{
	Use:   "mass <manifest.yaml>",
	Short: "Document every matching notebook under a directory tree",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manifest, err := mass.LoadManifest(args[0])
		if err != nil {
			fatal(err)
		}

		ctx := context.Background()
		deps, cleanup, err := buildDeps(ctx)
		if err != nil {
			fatal(err)
		}
		defer cleanup()

		runner := mass.Runner{Deps: deps}
		if err := runner.Run(ctx, manifest); err != nil {
			fatal(err)
		}
		fmt.Println("All files processed successfully.")
	},
}

func init() {
	rootCmd.AddCommand(massCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// buildDeps wires the configured collaborators for one process: config from
// the env files, logger, vault, model client, definitions store, emitter.
func buildDeps(ctx context.Context) (pipeline.Deps, func(), error) {
	cleanup := func() {}

	root, err := config.FindRoot()
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}

	logger := app.NewLogger(cfg.Log)

	vault, err := secrets.NewVault(cfg.KeyVault.BaseURL)
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}

	apiKey, err := vault.Secret(ctx, cfg.KeyVault.AISecret)
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}

	client, err := llm.New(ctx, llm.Options{
		Provider: cfg.AI.Provider,
		BaseURL:  cfg.AI.BaseURL,
		Model:    cfg.AI.Model,
		Version:  cfg.AI.Version,
		Task:     cfg.AI.Task,
		APIKey:   apiKey,
	})
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}

	store, cleanup, err := buildStore(ctx, root, cfg, vault, logger)
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}

	return pipeline.Deps{
		Root:    root,
		Logger:  logger,
		Store:   store,
		LLM:     client,
		Emitter: docs.NewEmitter(root),
	}, cleanup, nil
}

// buildStore picks the definitions backend by configuration. A disabled
// lookup returns a nil store and the pipeline skips the fetch entirely.
func buildStore(ctx context.Context, root string, cfg *config.Config, vault secrets.Source, logger *slog.Logger) (definitions.Store, func(), error) {
	cleanup := func() {}

	if !cfg.Definitions.Enabled {
		logger.Debug("definitions lookup disabled")
		return nil, cleanup, nil
	}

	if cfg.Definitions.Fabric.Complete() {
		logger.Info("using fabric definitions store", "database", cfg.Definitions.Fabric.Database)
		store, err := definitions.OpenFabric(ctx, root, definitions.FabricConfig{
			Database:       cfg.Definitions.Fabric.Database,
			EndpointSecret: cfg.Definitions.Fabric.EndpointSecret,
			ClientIDSecret: cfg.Definitions.Fabric.ClientIDSecret,
			PasswordSecret: cfg.Definitions.Fabric.PasswordSecret,
			BatchSize:      cfg.ODBC.BatchSize,
			MaxByteSize:    cfg.ODBC.MaxByteSize,
		}, vault)
		if err != nil {
			return nil, cleanup, err
		}
		return store, func() { store.Close() }, nil
	}

	if cfg.Definitions.Azure.Enabled {
		logger.Info("using azure definitions store", "database", cfg.Definitions.Azure.Database)
		return definitions.AzureStore{}, cleanup, nil
	}

	return nil, cleanup, fmt.Errorf("definitions lookup is enabled but no backend is configured")
}
