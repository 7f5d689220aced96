package config

import (
	"os"

	"github.com/pkg/errors"
)

// loggingConf holds all logging-related configuration under the `logging` key.
//
// YAML example:
//
//	logging:
//	  dir: /var/log/quoteserver
//	  stderr: true
//	  level: INFO
type loggingConf struct {
	Dir    string `yaml:"dir"`
	StdErr bool   `yaml:"stderr"`
	Level  string `yaml:"level"`
}

func (l *loggingConf) validate() error {
	if l.Dir != "" {
		if _, err := os.Stat(l.Dir); err != nil {
			return errors.Errorf("logging directory '%s' does not exist", l.Dir)
		}
	}
	return nil
}

var defaultLoggingConf = loggingConf{
	Level:  "INFO",
	StdErr: true,
}
