package ports

import (
	"context"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/seminar"
)

type SeminarRepository interface {
	Add(ctx context.Context, aggregate *seminar.Seminar) error
	Get(ctx context.Context, id kernel.UUID) (*seminar.Seminar, error)

	// ReserveSeat increments registered_count only while it is below
	// capacity. A full seminar yields the conflict from seminar.FullError.
	ReserveSeat(ctx context.Context, id kernel.UUID) error

	// AddRegistration stores a confirmed seat. The same email registering
	// twice for one seminar is a ConflictError.
	AddRegistration(ctx context.Context, registration seminar.Registration) error
}
