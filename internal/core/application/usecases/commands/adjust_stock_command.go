package commands

import (
	"errors"
	"strings"

	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/guard"
)

var ErrAdjustStockCommandIsNotConstructed = errors.New(
	"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
)

// AdjustStockCommand is a manual stock correction by delta units.
type AdjustStockCommand struct {
	key   string
	delta int

	guard guard.ConstructorGuard
}

func NewAdjustStockCommand(key string, delta int) (AdjustStockCommand, error) {
	cmd := AdjustStockCommand{key: strings.TrimSpace(key), delta: delta, guard: guard.NewConstructorGuard()}

	var errList []error
	if cmd.key == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product key"))
	}
	if delta == 0 {
		errList = append(errList, errs.NewValueIsInvalidError("delta"))
	}
	if err := errors.Join(errList...); err != nil {
		return AdjustStockCommand{}, err
	}
	return cmd, nil
}

func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

func (c AdjustStockCommand) Key() string { return c.key }
func (c AdjustStockCommand) Delta() int  { return c.delta }
