package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MinYonhee/api-urban-valle/internal"
	"github.com/MinYonhee/api-urban-valle/internal/configs"
)

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*envFile)
		},
	}
}

func loadConfig(envFile string) (*configs.AppConfig, error) {
	if envFile != "" {
		return configs.LoadConfig(envFile)
	}
	return configs.LoadConfig()
}

func serve(envFile string) error {
	appConfig, err := loadConfig(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	application, err := internal.NewApp(appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := application.Run(); err != nil {
		return fmt.Errorf("application run failed: %w", err)
	}
	return nil
}
