package main

//go:generate swag init

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/satheeshds/buildledger/cmd"
	"github.com/satheeshds/buildledger/internal/config"
	"github.com/satheeshds/buildledger/internal/logger"
)

// @title           BuildLedger API
// @version         1.0.0
// @description     Invoices, purchase orders, vendors and expense reconciliation for construction projects.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cmd.Execute(cfg)
}
