package quotesapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// registerAuthors wires the author handlers using the store abstractions.
func registerAuthors(r fiber.Router, authors model.AuthorsStore, quotes model.QuotesStore, opts Options) {
	g := r.Group("/authors")

	g.Get("/", func(c *fiber.Ctx) error {
		list, err := authors.List(c.Query("sort"), opts.ExposeDeleted)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(authorViews(list))
	})

	type createReq struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
	}
	g.Post("/", func(c *fiber.Ctx) error {
		var req createReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("name is required"))
		}
		a, err := authors.Create(req.Name, req.Surname)
		if err != nil {
			if _, ok := err.(model.AlreadyExistsError); ok {
				return c.Status(fiber.StatusConflict).JSON(ErrorConflict(err.Error()))
			}
			return errorRes(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a.View())
	})

	g.Get("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		a, err := authors.Get(id, opts.ExposeDeleted)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(a.View())
	})

	g.Put("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		var upd model.AuthorUpdate
		if err := c.BodyParser(&upd); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
		}
		a, err := authors.Update(id, upd)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(a.View())
	})

	g.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		if err := authors.Delete(id); err != nil {
			return errorRes(c, err)
		}
		return c.JSON(fiber.Map{"message": "author and owned quotes deleted"})
	})

	g.Get("/:id/quotes", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		// 404 for a missing author rather than an empty list
		if _, err := authors.Get(id, opts.ExposeDeleted); err != nil {
			return errorRes(c, err)
		}
		list, err := quotes.ListByAuthor(id, opts.ExposeDeleted)
		if err != nil {
			return errorRes(c, err)
		}
		return c.JSON(quoteViews(list))
	})

	type createQuoteReq struct {
		Text   string `json:"text"`
		Rating *int   `json:"rating"`
	}
	g.Post("/:id/quotes", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return errorRes(c, err)
		}
		var req createQuoteReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("invalid body"))
		}
		if req.Text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest("text is required"))
		}
		q, err := quotes.Create(id, req.Text, req.Rating)
		if err != nil {
			return errorRes(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(q.View())
	})
}

func authorViews(authors []model.Author) []model.AuthorView {
	views := make([]model.AuthorView, len(authors))
	for i, a := range authors {
		views[i] = a.View()
	}
	return views
}
