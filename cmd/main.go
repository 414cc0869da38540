package main

import (
	"btcwallet/internal/app"

	"github.com/sirupsen/logrus"
)

// @title BTC Wallet API
// @version 1.0
// @description Bitcoin wallet with a periodically refreshed BTC/USD rate and an audit log.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped")
	}
}
