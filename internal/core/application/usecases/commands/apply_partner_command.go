package commands

import (
	"errors"
	"strings"

	"medshop/internal/core/domain/model/partner"
	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrApplyPartnerCommandIsNotConstructed = errors.New(
	"ApplyPartnerCommand must be created via NewApplyPartnerCommand constructor",
)

// ApplyPartnerCommand submits a distributor or wholesaler application.
type ApplyPartnerCommand struct { //nolint:recvcheck //using for validation
	email    string
	name     string
	kind     partner.Type
	discount decimal.Decimal
	regions  []string

	guard guard.ConstructorGuard
}

func NewApplyPartnerCommand(email, name, kind string, discount decimal.Decimal, regions []string) (ApplyPartnerCommand, error) {
	cmd := ApplyPartnerCommand{
		email:    strings.TrimSpace(email),
		name:     strings.TrimSpace(name),
		discount: discount,
		regions:  regions,
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.email == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if cmd.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	parsed, err := partner.ParseType(kind)
	if err != nil {
		errList = append(errList, err)
	}
	cmd.kind = parsed
	if err = errors.Join(errList...); err != nil {
		return ApplyPartnerCommand{}, err
	}
	return cmd, nil
}

func (c ApplyPartnerCommand) Validate() error {
	return c.guard.Validate(ErrApplyPartnerCommandIsNotConstructed)
}

func (c ApplyPartnerCommand) Email() string             { return c.email }
func (c ApplyPartnerCommand) Name() string              { return c.name }
func (c ApplyPartnerCommand) Type() partner.Type        { return c.kind }
func (c ApplyPartnerCommand) Discount() decimal.Decimal { return c.discount }
func (c ApplyPartnerCommand) Regions() []string         { return c.regions }
