package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/coreos/go-systemd/daemon"
	"github.com/cyclopcam/logs"
	"github.com/joho/godotenv"

	"github.com/uright/uright/server"
)

func main() {
	parser := argparse.NewParser("uright", "Association management server")
	configFile := parser.String("c", "config", &argparse.Options{Help: "Configuration file", Default: "uright.json"})
	port := parser.String("p", "port", &argparse.Options{Help: "Override HTTP listen port (eg :8080)", Default: ""})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	// A .env next to the binary is the dev-time way of providing
	// URIGHT_BACKEND_URL and URIGHT_BACKEND_TOKEN
	godotenv.Load()

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := server.LoadConfig(*configFile)
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.HTTP.Port = *port
	}

	srv, err := server.NewServer(logger, cfg)
	if err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
	srv.ListenForKillSignals()
	daemon.SdNotify(false, daemon.SdNotifyReady)
	srv.ListenHTTP(cfg.HTTP.Port)
}
