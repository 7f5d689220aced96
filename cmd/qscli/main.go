package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/robmarkaryan/quoteserver/cmd/quoteserver/config"
	"github.com/robmarkaryan/quoteserver/storage/model"
)

var rootCmd = &cobra.Command{
	Use:   "qscli",
	Short: "qscli can help you manage your quoteserver",
	Long:  "qscli can help you manage your quoteserver",
	RunE:  rootRunE,
}

var configFile string
var backends model.Backends

func loadConfig() error {
	config.Load(configFile)
	log.Println("Loaded Config")
	c := config.Get()

	var err error
	backends, err = config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}
	return nil
}

func rootRunE(cmd *cobra.Command, args []string) error {
	return loadConfig()
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "the config file to use")
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(importCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
