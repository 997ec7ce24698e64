package main

import (
	"os"

	"github.com/yigit/hostelcare/internal/pkg/logger"
	"github.com/yigit/hostelcare/internal/server"
)

// @title HostelCare API
// @version 1.0
// @description API for managing college hostel rooms, allocations, swap requests and complaints

// @contact.name API Support
// @contact.email support@hostelcare.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization, as "Bearer <token>"

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// NewServer logs the failing step itself
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
