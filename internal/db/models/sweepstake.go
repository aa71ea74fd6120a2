package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SweepstakeStatus is the lifecycle state of a sweepstake.
type SweepstakeStatus string

const (
	// SweepstakeDraft is not yet visible to the public.
	SweepstakeDraft SweepstakeStatus = "draft"
	// SweepstakeActive is open for ticket sales and listed publicly.
	SweepstakeActive SweepstakeStatus = "active"
	// SweepstakeClosed no longer sells tickets.
	SweepstakeClosed SweepstakeStatus = "closed"
	// SweepstakeDrawn has a winner.
	SweepstakeDrawn SweepstakeStatus = "drawn"
)

var (
	// ErrTicketsOversold is returned when tickets sold would exceed the ticket cap.
	ErrTicketsOversold = errors.New("tickets sold exceed max tickets")
	// ErrUnknownSweepstakeStatus is returned for a status outside the known set.
	ErrUnknownSweepstakeStatus = errors.New("unknown sweepstake status")
)

// Valid reports whether s is a known status.
func (s SweepstakeStatus) Valid() bool {
	switch s {
	case SweepstakeDraft, SweepstakeActive, SweepstakeClosed, SweepstakeDrawn:
		return true
	default:
		return false
	}
}

// Sweepstake is a prize draw funded by ticket sales.
type Sweepstake struct {
	ID               uuid.UUID        `gorm:"type:varchar(36);primaryKey"`
	Title            string           `gorm:"size:255;not null"`
	Description      string           `gorm:"type:text"`
	PrizeDescription string           `gorm:"size:1000"`
	TicketPrice      int64            `gorm:"not null"` // cents
	MaxTickets       int              `gorm:"not null"`
	TicketsSold      int              `gorm:"not null"`
	DrawDate         time.Time        `gorm:"index"`
	Status           SweepstakeStatus `gorm:"type:varchar(20);index;not null"`
	ImageURL         string           `gorm:"size:500"`
	IsFeatured       bool             `gorm:"index;not null"`
	CreatedAt        time.Time        `gorm:"index"`
	UpdatedAt        time.Time
}

// TableName specifies the database table name for the Sweepstake model.
func (Sweepstake) TableName() string {
	return "sweepstakes"
}

// BeforeCreate assigns a random UUID when none is set.
func (s *Sweepstake) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	return nil
}

// BeforeSave enforces the ticket cap and the status set on every write.
func (s *Sweepstake) BeforeSave(_ *gorm.DB) error {
	if !s.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSweepstakeStatus, s.Status)
	}

	if s.TicketsSold < 0 || s.TicketsSold > s.MaxTickets {
		return fmt.Errorf("%w: %d of %d", ErrTicketsOversold, s.TicketsSold, s.MaxTickets)
	}

	return nil
}
