package commands

import (
	"errors"
	"time"

	"medshop/internal/pkg/guard"
)

var ErrCreateSeminarCommandIsNotConstructed = errors.New(
	"CreateSeminarCommand must be created via NewCreateSeminarCommand constructor",
)

type CreateSeminarCommand struct {
	title    string
	startsAt time.Time
	capacity int

	guard guard.ConstructorGuard
}

// NewCreateSeminarCommand defers field checks to seminar.NewSeminar.
func NewCreateSeminarCommand(title string, startsAt time.Time, capacity int) CreateSeminarCommand {
	return CreateSeminarCommand{title: title, startsAt: startsAt, capacity: capacity, guard: guard.NewConstructorGuard()}
}

func (c CreateSeminarCommand) Validate() error {
	return c.guard.Validate(ErrCreateSeminarCommandIsNotConstructed)
}

func (c CreateSeminarCommand) Title() string       { return c.title }
func (c CreateSeminarCommand) StartsAt() time.Time { return c.startsAt }
func (c CreateSeminarCommand) Capacity() int       { return c.capacity }
