package quotesapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/robmarkaryan/quoteserver/internal/version"
	"github.com/robmarkaryan/quoteserver/storage/model"
)

// Options controls optional features of the API registration.
type Options struct {
	// UsersEnabled controls whether the user management API is mounted.
	UsersEnabled bool
	// ExposeDeleted controls the visibility of soft-deleted records: when
	// false (the default), read endpoints hide records with
	// model.StatusDeleted and a deleted id is a 404; when true, records
	// are returned with their status field.
	ExposeDeleted bool
}

// Register mounts all API routes on the passed router.
func Register(r fiber.Router, storages model.Backends, opts *Options) {
	o := Options{}
	if opts != nil {
		o = *opts
	}

	r.Get(
		"/version", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"version": version.VERSION})
		},
	)

	// Mutating routes require authentication once at least one user exists
	r.Use(authMiddleware(storages.Users))

	registerQuotes(r, storages.Quotes, o)
	registerAuthors(r, storages.Authors, storages.Quotes, o)
	if o.UsersEnabled {
		registerUsers(r, storages.Users)
	}
}
