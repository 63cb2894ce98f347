package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/logger"
	"github.com/jonathan/resume-parser/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume analysis endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	srv, err := server.New(serverConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadServeConfig layers the config file, defaults, environment and flags, in that order.
func loadServeConfig(cmd *cobra.Command) (config.Config, error) {
	fileCfg := &config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = loaded
	}

	cfg := fileCfg.MergeWithDefaults(config.Defaults())
	cfg.ApplyEnv()
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func serverConfig(cfg config.Config) server.Config {
	return server.Config{
		Port:            cfg.Port,
		ReadTimeout:     config.Duration(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout:    config.Duration(cfg.WriteTimeout, 10*time.Second),
		IdleTimeout:     config.Duration(cfg.IdleTimeout, 60*time.Second),
		ShutdownTimeout: config.Duration(cfg.ShutdownTimeout, 10*time.Second),
		MaxBodyBytes:    cfg.MaxBodyBytes,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
	}
}
