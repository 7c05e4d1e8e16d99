package commands

import (
	"errors"

	"medshop/internal/pkg/guard"
)

var ErrEscalateOrdersCommandIsNotConstructed = errors.New(
	"EscalateOrdersCommand must be created via NewEscalateOrdersCommand constructor",
)

// EscalateOrdersCommand triggers one escalation sweep. It is run by the
// cron job and by the on-demand sweep endpoint.
type EscalateOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewEscalateOrdersCommand() EscalateOrdersCommand {
	return EscalateOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c EscalateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrEscalateOrdersCommandIsNotConstructed)
}
