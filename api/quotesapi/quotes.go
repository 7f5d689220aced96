package quotesapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// registerQuotes wires the quote handlers using a QuotesStore abstraction.
func registerQuotes(r fiber.Router, quotes model.QuotesStore, opts Options) {
	g := r.Group("/quotes")

	g.Get("/", func(c *fiber.Ctx) error {
		list, err := quotes.List(model.QuoteFilter{}, opts.ExposeDeleted)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(quoteViews(list))
	})

	g.Get("/count", func(c *fiber.Ctx) error {
		count, err := quotes.Count(opts.ExposeDeleted)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	g.Get("/random", func(c *fiber.Ctx) error {
		q, err := quotes.Random(opts.ExposeDeleted)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(q.View())
	})

	// Exact-match filter, AND semantics: /quotes/filter?author_id=1&rating=3
	g.Get("/filter", func(c *fiber.Ctx) error {
		filter, err := parseQuoteFilter(c)
		if err != nil {
			return errorRes(c, err)
		}
		list, err := quotes.List(filter, opts.ExposeDeleted)
		if err != nil {
			return errorRes(c, err)
		}
		if len(list) == 0 {
			return c.JSON(fiber.Map{"message": "no quotes match the filter"})
		}
		return c.JSON(quoteViews(list))
	})

	g.Get("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		q, err := quotes.Get(id, opts.ExposeDeleted)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(q.View())
	})

	g.Put("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		var upd model.QuoteUpdate
		if err := c.BodyParser(&upd); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
		}
		q, err := quotes.Update(id, upd)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(q.View())
	})

	g.Put("/:id/change_rating_by/:delta", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		delta, err := strconv.Atoi(c.Params("delta"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("rating delta must be an integer"))
		}
		q, err := quotes.AdjustRating(id, delta)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(q.View())
	})

	g.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		purge := c.QueryBool("purge")
		if err := quotes.Delete(id, purge); err != nil {
			return errorRes(c, err)
		}
		return c.JSON(fiber.Map{"message": "quote deleted"})
	})
}

func quoteViews(quotes []model.Quote) []model.QuoteView {
	views := make([]model.QuoteView, len(quotes))
	for i, q := range quotes {
		views[i] = q.View()
	}
	return views
}

// paramID parses a positive integer id path parameter
func paramID(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, model.ValidationErrorFmt("invalid %s: %s", name, c.Params(name))
	}
	return uint(v), nil
}

// parseQuoteFilter reads the exact-match filter predicates from the query
// string. Unknown parameters are ignored; malformed values are rejected.
func parseQuoteFilter(c *fiber.Ctx) (model.QuoteFilter, error) {
	var filter model.QuoteFilter
	if v := c.Query("author_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, model.ValidationErrorFmt("invalid author_id filter: %s", v)
		}
		authorID := uint(id)
		filter.AuthorID = &authorID
	}
	if v := c.Query("text"); v != "" {
		text := v
		filter.Text = &text
	}
	if v := c.Query("rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			return filter, model.ValidationErrorFmt("invalid rating filter: %s", v)
		}
		filter.Rating = &rating
	}
	if v := c.Query("status"); v != "" {
		status, err := model.ParseStatus(v)
		if err != nil {
			return filter, model.ValidationError(err.Error())
		}
		filter.Status = &status
	}
	return filter, nil
}
