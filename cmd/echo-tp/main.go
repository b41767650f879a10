package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/9triver/ledgerkit/internal/config"
	"github.com/9triver/ledgerkit/internal/util"
	"github.com/9triver/ledgerkit/processor"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to config file")
	endpoint := flag.String("endpoint", "", "Validator endpoint (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if errors.Is(err, os.ErrNotExist) {
		cfg = &config.Config{}
		config.ApplyDefaults(cfg)
	} else if err != nil {
		log.Fatalf("Load config: %v", err)
	}
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	util.InitLogger(cfg.Log.Level, cfg.Log.Format)

	tp := processor.New(cfg.Endpoint)
	tp.AddHandler(&EchoHandler{})

	logrus.Infof("echo-tp starting, validator at %s", cfg.Endpoint)

	// Start blocks until an unrecoverable transport error; disconnects are
	// retried inside.
	tp.Start()

	logrus.Info("echo-tp exited")
}
