package config

import (
	"github.com/robmarkaryan/quoteserver/api/quotesapi"
)

// apiConf holds API behavior configuration under the `api` key.
type apiConf struct {
	// UsersEnabled mounts the user management API
	UsersEnabled bool `yaml:"users_enabled"`
	// ExposeDeleted makes soft-deleted authors and quotes visible on the
	// read endpoints, carrying their status; when false a deleted id is
	// a 404
	ExposeDeleted bool `yaml:"expose_deleted"`
}

// Options returns the quotesapi.Options for this conf
func (c apiConf) Options() *quotesapi.Options {
	return &quotesapi.Options{
		UsersEnabled:  c.UsersEnabled,
		ExposeDeleted: c.ExposeDeleted,
	}
}

var defaultAPIConf = apiConf{
	UsersEnabled: true,
}
