package partner

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")

var maxDiscount = decimal.NewFromInt(100)

// Partner is a reseller account. Applications start pending; only an admin
// approves or rejects them.
type Partner struct {
	id       kernel.UUID
	email    string
	name     string
	kind     Type
	status   Status
	discount decimal.Decimal
	regions  []kernel.Region

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPartner registers a pending application. Regions are normalized and
// de-duplicated; a distributor must serve at least one region.
func NewPartner(id kernel.UUID, email, name string, kind Type, discount decimal.Decimal, regions []string, at time.Time) (*Partner, error) {
	p := &Partner{
		status:        Pending,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setEmail(email),
		p.setName(name),
		p.setKind(kind),
		p.setDiscount(discount),
		p.setRegions(regions),
	); err != nil {
		return nil, err
	}
	if p.kind == Distributor && len(p.regions) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("regions", errors.New("a distributor serves at least one region"))
	}
	return p, nil
}

// Snapshot is the persisted state consumed by RestorePartner.
type Snapshot struct {
	ID        kernel.UUID
	Email     string
	Name      string
	Type      Type
	Status    Status
	Discount  decimal.Decimal
	Regions   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func RestorePartner(s Snapshot) (*Partner, error) {
	p := &Partner{
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}
	if err := errors.Join(
		p.setID(s.ID),
		p.setEmail(s.Email),
		p.setName(s.Name),
		p.setKind(s.Type),
		p.setDiscount(s.Discount),
		p.setRegions(s.Regions),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	p.status = s.Status
	return p, nil
}

func (p *Partner) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartnerIsNotConstructed
	}
	return nil
}

func (p *Partner) ID() kernel.UUID           { return p.id }
func (p *Partner) Email() string             { return p.email }
func (p *Partner) Name() string              { return p.name }
func (p *Partner) Type() Type                { return p.kind }
func (p *Partner) Status() Status            { return p.status }
func (p *Partner) Discount() decimal.Decimal { return p.discount }
func (p *Partner) CreatedAt() time.Time      { return p.createdAt }
func (p *Partner) UpdatedAt() time.Time      { return p.updatedAt }

func (p *Partner) Regions() []kernel.Region {
	return slices.Clone(p.regions)
}

// Serves reports whether the partner covers region.
func (p *Partner) Serves(region kernel.Region) bool {
	return slices.Contains(p.regions, region)
}

// IsApprovedDistributor reports whether orders may be routed to the partner.
func (p *Partner) IsApprovedDistributor() bool {
	return p.kind == Distributor && p.status == Approved
}

// Review moves the application to target. Only admins review; an application
// never returns to pending. Re-applying the current status is a no-op.
func (p *Partner) Review(target Status, actor kernel.Role, at time.Time) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := target.Validate(); err != nil {
		return false, err
	}
	if !actor.IsPrivileged() {
		return false, errs.NewConflictErrorWithCause("partner review", fmt.Errorf("%s may not review partners", actor))
	}
	if target == p.status {
		return false, nil
	}
	if target == Pending {
		return false, errs.NewConflictErrorWithCause("partner review", fmt.Errorf("%s -> %s is not an allowed transition", p.status, target))
	}

	p.status = target
	p.updatedAt = at
	return true, nil
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("partner email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("partner email", err)
	}
	p.email = email
	return nil
}

func (p *Partner) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("partner name")
	}
	p.name = name
	return nil
}

func (p *Partner) setKind(kind Type) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	p.kind = kind
	return nil
}

func (p *Partner) setDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(maxDiscount) {
		return errs.NewValueIsOutOfRangeError("discount percent", discount.String(), 0, 100)
	}
	if !discount.Equal(discount.Truncate(kernel.MoneyScale)) {
		return errs.NewValueIsInvalidErrorWithCause("discount percent", fmt.Errorf("%s has more than %d decimal places", discount, kernel.MoneyScale))
	}
	p.discount = discount
	return nil
}

func (p *Partner) setRegions(regions []string) error {
	normalized := make([]kernel.Region, 0, len(regions))
	for _, raw := range regions {
		r, err := kernel.NewRegion(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("blank region in %q", regions))
		}
		if !slices.Contains(normalized, r) {
			normalized = append(normalized, r)
		}
	}
	p.regions = normalized
	return nil
}
