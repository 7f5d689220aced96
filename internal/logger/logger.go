package logger

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Conf configures the internal logger.
type Conf struct {
	// Level sets the verbosity (e.g. DEBUG, INFO, WARN, ERROR)
	Level string
	// Dir, when set, makes the logger write to quoteserver.log in that
	// directory
	Dir string
	// StdErr additionally mirrors log output to stderr
	StdErr bool
}

// Init initializes the application-internal logrus logger from the passed
// Conf. Unparsable levels fall back to INFO.
func Init(c Conf) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(
		&log.TextFormatter{
			FullTimestamp: true,
		},
	)

	var outputs []io.Writer
	if c.Dir != "" {
		f, err := os.OpenFile(
			filepath.Join(c.Dir, "quoteserver.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
		)
		if err != nil {
			log.WithError(err).Error("could not open log file, logging to stderr only")
		} else {
			outputs = append(outputs, f)
		}
	}
	if c.StdErr || len(outputs) == 0 {
		outputs = append(outputs, os.Stderr)
	}
	log.SetOutput(io.MultiWriter(outputs...))
}
