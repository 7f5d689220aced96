package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/robmarkaryan/quoteserver"
	"github.com/robmarkaryan/quoteserver/cmd/quoteserver/config"
	"github.com/robmarkaryan/quoteserver/internal/logger"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	c := config.Get()
	logger.Init(
		logger.Conf{
			Level:  c.Logging.Level,
			Dir:    c.Logging.Dir,
			StdErr: c.Logging.StdErr,
		},
	)
	log.Info("Loaded Config")

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}

	qs := quoteserver.NewQuoteServer(c.Server, backs, c.API.Options())
	log.Info("Initialized quotes API")
	qs.Start()
}
