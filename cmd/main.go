package main

import (
	"os"

	"mindclinic/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize application with all dependencies
	app, err := bootstrap.New()
	if err != nil {
		logrus.Errorf("Failed to initialize application: %v", err)
		os.Exit(1)
	}

	// Run the application
	os.Exit(app.Run())
}
