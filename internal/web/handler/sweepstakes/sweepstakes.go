// Package sweepstakes serves the active sweepstakes.
package sweepstakes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	sweepstakectl "github.com/CashGlitch/CashGlitch/internal/db/controller/sweepstake"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

// Path is the route of the sweepstakes API.
const Path = handler.APIPrefix + "/sweepstakes"

// Sweepstake is the JSON shape of a sweepstake.
type Sweepstake struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	PrizeDescription string                  `json:"prizeDescription"`
	TicketPrice      int64                   `json:"ticketPrice"`
	MaxTickets       int                     `json:"maxTickets"`
	TicketsSold      int                     `json:"ticketsSold"`
	TicketsLeft      int                     `json:"ticketsLeft"`
	DrawDate         time.Time               `json:"drawDate"`
	Status           models.SweepstakeStatus `json:"status"`
	ImageURL         string                  `json:"imageUrl"`
	IsFeatured       bool                    `json:"isFeatured"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

func toSweepstake(s *models.Sweepstake) Sweepstake {
	return Sweepstake{
		ID:               s.ID.String(),
		Title:            s.Title,
		Description:      s.Description,
		PrizeDescription: s.PrizeDescription,
		TicketPrice:      s.TicketPrice,
		MaxTickets:       s.MaxTickets,
		TicketsSold:      s.TicketsSold,
		TicketsLeft:      max(s.MaxTickets-s.TicketsSold, 0),
		DrawDate:         s.DrawDate,
		Status:           s.Status,
		ImageURL:         s.ImageURL,
		IsFeatured:       s.IsFeatured,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// Service is the sweepstakes handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init registers the sweepstakes route.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps

	app.Get(Path, s.List)

	return nil
}

// List returns active sweepstakes, featured first and then newest first.
func (s *Service) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.deps.Content.InitializeSweepstakes(ctx); err != nil {
		return handler.Internal(c, err, "Failed to fetch sweepstakes")
	}

	rows, err := sweepstakectl.ListActive(ctx, s.deps.DB)
	if err != nil {
		return handler.Internal(c, err, "Failed to fetch sweepstakes")
	}

	out := make([]Sweepstake, 0, len(rows))
	for i := range rows {
		out = append(out, toSweepstake(&rows[i]))
	}

	return c.JSON(out)
}
