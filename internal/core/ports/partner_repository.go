package ports

import (
	"context"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for partner accounts.
type PartnerRepository interface {
	// Add persists a new application. A duplicate email is a ConflictError.
	Add(ctx context.Context, aggregate *partner.Partner) error
	Update(ctx context.Context, aggregate *partner.Partner) error
	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// FindByEmail returns ObjectNotFoundError when no partner uses email.
	FindByEmail(ctx context.Context, email string) (*partner.Partner, error)

	// ListApprovedDistributors returns approved distributors serving region,
	// oldest application first, ties by email.
	ListApprovedDistributors(ctx context.Context, region kernel.Region) ([]*partner.Partner, error)
}
