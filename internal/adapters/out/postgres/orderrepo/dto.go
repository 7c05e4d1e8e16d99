// Package orderrepo persists the order aggregate. Line items live in a jsonb
// column and writes are guarded by the version column.
package orderrepo

import (
	"errors"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	OrderNumber     string                         `gorm:"size:40;not null;uniqueIndex:idx_orders_order_number"`
	CustomerName    string                         `gorm:"not null"`
	CustomerEmail   string                         `gorm:"not null;default:''"`
	CustomerPhone   string                         `gorm:"not null;default:''"`
	CustomerAddress string                         `gorm:"not null;default:''"`
	CustomerState   string                         `gorm:"not null;default:''"`
	Items           datatypes.JSONType[[]ItemDTO] `gorm:"type:jsonb;not null"`
	DeliveryOption  string                         `gorm:"size:16;not null"`
	Subtotal        decimal.Decimal                `gorm:"type:numeric(12,2);not null"`
	DeliveryFee     decimal.Decimal                `gorm:"type:numeric(12,2);not null"`
	Tax             decimal.Decimal                `gorm:"type:numeric(12,2);not null"`
	TotalAmount     decimal.Decimal                `gorm:"type:numeric(12,2);not null"`
	Status          string                         `gorm:"size:24;not null;index:idx_orders_status_created,priority:1"`
	EscalationLevel int                            `gorm:"not null;default:0"`
	EscalationDate  *time.Time
	DistributorID   *uuid.UUID `gorm:"type:uuid;index"`
	DistributorName *string
	AcknowledgedAt  *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false;index:idx_orders_status_created,priority:2"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
	Version         int       `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one element of the items json array.
type ItemDTO struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			SKU:       item.SKU(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	var (
		distributorID   *uuid.UUID
		distributorName *string
	)
	if d := o.Distributor(); d != nil {
		raw := d.ID().Bytes()
		name := d.Name()
		distributorID = &raw
		distributorName = &name
	}

	customer := o.Customer()
	return OrderDTO{
		ID:              o.ID().Bytes(),
		OrderNumber:     o.Number().String(),
		CustomerName:    customer.Name(),
		CustomerEmail:   customer.Email(),
		CustomerPhone:   customer.Phone(),
		CustomerAddress: customer.Address(),
		CustomerState:   customer.State(),
		Items:           datatypes.NewJSONType(items),
		DeliveryOption:  o.DeliveryOption().String(),
		Subtotal:        o.Subtotal(),
		DeliveryFee:     o.DeliveryFee(),
		Tax:             o.Tax(),
		TotalAmount:     o.Total(),
		Status:          o.Status().String(),
		EscalationLevel: o.EscalationLevel(),
		EscalationDate:  o.EscalationDate(),
		DistributorID:   distributorID,
		DistributorName: distributorName,
		AcknowledgedAt:  o.AcknowledgedAt(),
		DeliveredAt:     o.DeliveredAt(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
	}
}

// mutableColumns are the columns an Update may touch.
func mutableColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"status":           dto.Status,
		"escalation_level": dto.EscalationLevel,
		"escalation_date":  dto.EscalationDate,
		"distributor_id":   dto.DistributorID,
		"distributor_name": dto.DistributorName,
		"acknowledged_at":  dto.AcknowledgedAt,
		"delivered_at":     dto.DeliveredAt,
		"updated_at":       dto.UpdatedAt,
		"version":          dto.Version + 1,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerEmail, dto.CustomerPhone,
		dto.CustomerAddress, dto.CustomerState)
	if err != nil {
		return nil, err
	}

	stored := dto.Items.Data()
	items := make([]order.LineItem, 0, len(stored))
	for _, item := range stored {
		li, itemErr := order.NewLineItem(item.SKU, item.Name, item.Quantity, item.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, li)
	}

	status, statusErr := order.ParseStatus(dto.Status)
	option, optionErr := order.ParseDeliveryOption(dto.DeliveryOption)
	if err = errors.Join(statusErr, optionErr); err != nil {
		return nil, err
	}

	var distributor *order.DistributorRef
	if dto.DistributorID != nil {
		dID, idErr := kernel.UUIDFromBytes(dto.DistributorID[:])
		if idErr != nil {
			return nil, idErr
		}
		name := ""
		if dto.DistributorName != nil {
			name = *dto.DistributorName
		}
		ref, refErr := order.NewDistributorRef(dID, name)
		if refErr != nil {
			return nil, refErr
		}
		distributor = &ref
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		Number:          order.Number(dto.OrderNumber),
		Customer:        customer,
		Items:           items,
		DeliveryOption:  option,
		DeliveryFee:     dto.DeliveryFee,
		Tax:             dto.Tax,
		Status:          status,
		EscalationLevel: dto.EscalationLevel,
		EscalationDate:  dto.EscalationDate,
		Distributor:     distributor,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		AcknowledgedAt:  dto.AcknowledgedAt,
		DeliveredAt:     dto.DeliveredAt,
		Version:         dto.Version,
	})
}
