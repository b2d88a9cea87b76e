package main

import (
	"denta/config"
	"denta/di"
	"denta/shared/logger"
)

// @title Denta Clinic Booking API
// @version 1.0
// @description Clinic booking backend: treatment availability, booking admission, payment reconciliation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
