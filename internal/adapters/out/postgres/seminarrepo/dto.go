// Package seminarrepo persists seminars and their registrations. Seats are
// reserved with a conditional UPDATE on registered_count.
package seminarrepo

import (
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/seminar"

	"github.com/google/uuid"
)

type SeminarDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title           string    `gorm:"not null"`
	StartsAt        time.Time `gorm:"not null;index"`
	Capacity        int       `gorm:"not null;check:chk_seminars_capacity,capacity > 0"`
	RegisteredCount int       `gorm:"not null;default:0;check:chk_seminars_registered,registered_count <= capacity"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
}

func (SeminarDTO) TableName() string {
	return "seminars"
}

type RegistrationDTO struct {
	Token     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SeminarID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_seminar_email,priority:1"`
	Seminar   SeminarDTO `gorm:"foreignKey:SeminarID;references:ID;constraint:OnDelete:CASCADE"`
	Name      string     `gorm:"not null"`
	Email     string     `gorm:"size:254;not null;uniqueIndex:idx_registrations_seminar_email,priority:2"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
}

func (RegistrationDTO) TableName() string {
	return "seminar_registrations"
}

func fromDomain(s *seminar.Seminar) SeminarDTO {
	return SeminarDTO{
		ID:              s.ID().Bytes(),
		Title:           s.Title(),
		StartsAt:        s.StartsAt(),
		Capacity:        s.Capacity(),
		RegisteredCount: s.RegisteredCount(),
		CreatedAt:       s.CreatedAt(),
	}
}

func toDomain(dto SeminarDTO) (*seminar.Seminar, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return seminar.RestoreSeminar(id, dto.Title, dto.StartsAt, dto.Capacity, dto.RegisteredCount, dto.CreatedAt)
}

func registrationFromDomain(r seminar.Registration) RegistrationDTO {
	return RegistrationDTO{
		Token:     r.Token().Bytes(),
		SeminarID: r.SeminarID().Bytes(),
		Name:      r.Name(),
		Email:     r.Email(),
		CreatedAt: r.CreatedAt(),
	}
}
