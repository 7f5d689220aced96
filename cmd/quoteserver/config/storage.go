package config

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/robmarkaryan/quoteserver/storage"
	"github.com/robmarkaryan/quoteserver/storage/model"
)

type storageConf struct {
	Driver  storage.DriverType `yaml:"driver"`
	DataDir string             `yaml:"data_dir"`
	DSN     string             `yaml:"dsn"`
	storage.DSNConf
	Debug bool `yaml:"debug"`
}

func (c *storageConf) validate() error {
	switch c.Driver {
	case storage.DriverMemory:
		return nil
	case storage.DriverSQLite:
		if c.DataDir == "" && c.DSN == "" {
			return errors.New("error in storage conf: data_dir must be specified")
		}
		return nil
	case storage.DriverMySQL, storage.DriverPostgres:
		var err error
		if c.DSN == "" {
			c.DSN, err = storage.DSN(c.Driver, c.DSNConf)
		}
		return err
	default:
		return errors.Errorf("error in storage conf: unsupported driver '%s'", c.Driver)
	}
}

var defaultStorageConf = storageConf{
	Driver: storage.DriverSQLite,
	DSNConf: storage.DSNConf{
		User: "quotes",
		Host: "localhost",
		DB:   "quotes",
	},
	Debug: false,
}

// LoadStorageBackends loads and returns the storage backends for the passed Config
func LoadStorageBackends(c storageConf) (model.Backends, error) {
	cfg := storage.Config{
		Driver:  c.Driver,
		DSN:     c.DSN,
		DataDir: c.DataDir,
		Debug:   c.Debug,
	}
	backs, err := storage.LoadStorageBackends(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	log.Info("Loaded storage backend")
	return backs, nil
}
