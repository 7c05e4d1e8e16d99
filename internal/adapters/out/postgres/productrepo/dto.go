// Package productrepo persists catalog products. Stock changes are applied
// with a single conditional UPDATE.
package productrepo

import (
	"time"

	"medshop/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ProductDTO struct {
	Key              string            `gorm:"size:64;primaryKey"`
	Name             string            `gorm:"not null;index"`
	RetailPrice      decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	DistributorPrice decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	WholesalerPrice  decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Stock            int               `gorm:"not null;check:chk_products_stock,stock >= 0"`
	Attributes       datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt        time.Time         `gorm:"not null;autoCreateTime:false"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	prices := p.Prices()
	attributes := datatypes.JSONMap(p.Attributes())
	if attributes == nil {
		attributes = datatypes.JSONMap{}
	}
	return ProductDTO{
		Key:              p.Key(),
		Name:             p.Name(),
		RetailPrice:      prices.Retail,
		DistributorPrice: prices.Distributor,
		WholesalerPrice:  prices.Wholesaler,
		Stock:            p.Stock(),
		Attributes:       attributes,
		CreatedAt:        p.CreatedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	return product.NewProduct(dto.Key, dto.Name, product.Prices{
		Retail:      dto.RetailPrice,
		Distributor: dto.DistributorPrice,
		Wholesaler:  dto.WholesalerPrice,
	}, dto.Stock, map[string]any(dto.Attributes), dto.CreatedAt)
}
