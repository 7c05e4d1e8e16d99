package commands

import (
	"errors"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/guard"
)

var ErrRegisterForSeminarCommandIsNotConstructed = errors.New(
	"RegisterForSeminarCommand must be created via NewRegisterForSeminarCommand constructor",
)

type RegisterForSeminarCommand struct {
	seminarID kernel.UUID
	name      string
	email     string

	guard guard.ConstructorGuard
}

func NewRegisterForSeminarCommand(seminarID, name, email string) (RegisterForSeminarCommand, error) {
	id, err := kernel.UUIDFromString(seminarID)
	if err != nil {
		return RegisterForSeminarCommand{}, err
	}
	return RegisterForSeminarCommand{seminarID: id, name: name, email: email, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterForSeminarCommand) Validate() error {
	return c.guard.Validate(ErrRegisterForSeminarCommandIsNotConstructed)
}

func (c RegisterForSeminarCommand) SeminarID() kernel.UUID { return c.seminarID }
func (c RegisterForSeminarCommand) Name() string           { return c.name }
func (c RegisterForSeminarCommand) Email() string          { return c.email }
