// Command usersapi runs the in-memory users HTTP service.
//
// Usage:
//
//	usersapi [-a address] [-l level] [-m max-body-bytes] [-c config.json]
//
// Without flags, environment variables or a config file the server listens on :3000.
package main

import (
	"context"

	"github.com/patric-chuzhbe/usersapi/internal/app"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	theApp, err := app.New()
	if err != nil {
		return err
	}
	defer theApp.Close()

	return theApp.Run(context.Background())
}
