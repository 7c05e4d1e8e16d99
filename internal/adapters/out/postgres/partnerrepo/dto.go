// Package partnerrepo persists distributor and wholesaler partners. Served
// regions are a postgres text[] column.
package partnerrepo

import (
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PartnerDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Email           string          `gorm:"size:254;not null;uniqueIndex:idx_partners_email"`
	Name            string          `gorm:"not null"`
	Type            string          `gorm:"size:16;not null;index:idx_partners_type_status,priority:1"`
	Status          string          `gorm:"size:16;not null;index:idx_partners_type_status,priority:2"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Regions         pq.StringArray  `gorm:"type:text[];not null"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (PartnerDTO) TableName() string {
	return "partners"
}

func fromDomain(p *partner.Partner) PartnerDTO {
	regions := make(pq.StringArray, 0, len(p.Regions()))
	for _, r := range p.Regions() {
		regions = append(regions, r.String())
	}

	return PartnerDTO{
		ID:              p.ID().Bytes(),
		Email:           p.Email(),
		Name:            p.Name(),
		Type:            p.Type().String(),
		Status:          p.Status().String(),
		DiscountPercent: p.Discount(),
		Regions:         regions,
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return partner.RestorePartner(partner.Snapshot{
		ID:        id,
		Email:     dto.Email,
		Name:      dto.Name,
		Type:      partner.Type(dto.Type),
		Status:    partner.Status(dto.Status),
		Discount:  dto.DiscountPercent,
		Regions:   []string(dto.Regions),
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
