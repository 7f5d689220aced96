package config

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/robmarkaryan/quoteserver"
)

// Config holds the full configuration of the quoteserver
type Config struct {
	Server  quoteserver.ServerConf `yaml:"server"`
	Storage storageConf            `yaml:"storage"`
	Logging loggingConf            `yaml:"logging"`
	API     apiConf                `yaml:"api"`
}

var conf *Config

// Get returns the loaded Config
func Get() *Config {
	return conf
}

// possibleConfigLocations is tried in order when no config file is passed
var possibleConfigLocations = []string{
	"config.yaml",
	"/etc/quoteserver/config.yaml",
}

// Load loads the configuration from the passed file, or from the first
// existing default location when file is empty. Errors are fatal.
func Load(file string) {
	data, err := readConfigFile(file)
	if err != nil {
		log.Fatal(err)
	}
	c := defaultConfig()
	if err = yaml.Unmarshal(data, c); err != nil {
		log.WithError(err).Fatal("could not parse config file")
	}
	if err = c.validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	conf = c
}

func readConfigFile(file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		return data, errors.Wrapf(err, "could not read config file '%s'", file)
	}
	for _, loc := range possibleConfigLocations {
		data, err := os.ReadFile(loc)
		if err == nil {
			return data, nil
		}
	}
	return nil, errors.Errorf(
		"no config file found in the default locations %v", possibleConfigLocations,
	)
}

func defaultConfig() *Config {
	return &Config{
		Server: quoteserver.ServerConf{
			Port: 8000,
		},
		Storage: defaultStorageConf,
		Logging: defaultLoggingConf,
		API:     defaultAPIConf,
	}
}

func (c *Config) validate() error {
	if err := c.Storage.validate(); err != nil {
		return err
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return nil
}
