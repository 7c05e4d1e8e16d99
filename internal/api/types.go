package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type Customer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	State   string `json:"state,omitempty"`
}

type OrderItem struct {
	Sku       string          `json:"sku" validate:"required"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type NewOrder struct {
	Customer       Customer    `json:"customer"`
	Items          []OrderItem `json:"items" validate:"required,min=1,dive"`
	DeliveryOption string      `json:"delivery_option" validate:"required"`
}

type OrderCreated struct {
	Id            openapi_types.UUID  `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	DistributorId *openapi_types.UUID `json:"distributor_id,omitempty"`
}

type Order struct {
	Id              openapi_types.UUID  `json:"id"`
	OrderNumber     string              `json:"order_number"`
	Customer        Customer            `json:"customer"`
	Items           []OrderItem         `json:"items"`
	DeliveryOption  string              `json:"delivery_option"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DeliveryFee     decimal.Decimal     `json:"delivery_fee"`
	Tax             decimal.Decimal     `json:"tax"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	EscalationLevel int                 `json:"escalation_level"`
	EscalationDate  *time.Time          `json:"escalation_date,omitempty"`
	DistributorId   *openapi_types.UUID `json:"distributor_id,omitempty"`
	DistributorName string              `json:"distributor_name,omitempty"`
	AcknowledgedAt  *time.Time          `json:"acknowledged_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

type StatusChange struct {
	Status    string `json:"status" validate:"required"`
	ActorRole string `json:"actor_role" validate:"required"`
}

type DistributorChange struct {
	DistributorId openapi_types.UUID `json:"distributor_id" validate:"required"`
	ActorRole     string             `json:"actor_role" validate:"required"`
}

type SweepResult struct {
	Escalated int `json:"escalated"`
	Skipped   int `json:"skipped"`
}

type NewPartner struct {
	Email           string          `json:"email" validate:"required,email"`
	Name            string          `json:"name" validate:"required"`
	Type            string          `json:"type" validate:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Regions         []string        `json:"regions,omitempty" validate:"dive,required"`
}

type Partner struct {
	Id              openapi_types.UUID `json:"id"`
	Email           string             `json:"email"`
	Name            string             `json:"name"`
	Type            string             `json:"type"`
	Status          string             `json:"status"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	Regions         []string           `json:"regions"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type PartnerReview struct {
	Status    string `json:"status" validate:"required"`
	ActorRole string `json:"actor_role" validate:"required"`
}

type NewProduct struct {
	Key              string          `json:"key,omitempty"`
	Name             string          `json:"name" validate:"required"`
	RetailPrice      decimal.Decimal `json:"retail_price"`
	DistributorPrice decimal.Decimal `json:"distributor_price"`
	WholesalerPrice  decimal.Decimal `json:"wholesaler_price"`
	Stock            int             `json:"stock" validate:"gte=0"`
	Attributes       map[string]any  `json:"attributes,omitempty"`
}

type Product struct {
	Key              string          `json:"key"`
	Name             string          `json:"name"`
	RetailPrice      decimal.Decimal `json:"retail_price"`
	DistributorPrice decimal.Decimal `json:"distributor_price"`
	WholesalerPrice  decimal.Decimal `json:"wholesaler_price"`
	Stock            int             `json:"stock"`
	Attributes       map[string]any  `json:"attributes"`
	CreatedAt        time.Time       `json:"created_at"`
}

type PricedProduct struct {
	Product
	Tier  string          `json:"tier"`
	Price decimal.Decimal `json:"price"`
}

type StockAdjustment struct {
	Delta int `json:"delta"`
}

type StockLevel struct {
	Key   string `json:"key"`
	Stock int    `json:"stock"`
}

type NewSeminar struct {
	Title    string    `json:"title" validate:"required"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	Capacity int       `json:"capacity" validate:"gt=0"`
}

type Seminar struct {
	Id              openapi_types.UUID `json:"id"`
	Title           string             `json:"title"`
	StartsAt        time.Time          `json:"starts_at"`
	Capacity        int                `json:"capacity"`
	RegisteredCount int                `json:"registered_count"`
	SeatsLeft       int                `json:"seats_left"`
}

type NewRegistration struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type RegistrationConfirmation struct {
	Token     openapi_types.UUID `json:"token"`
	Confirmed bool               `json:"confirmed"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	DistributorId *openapi_types.UUID `form:"distributor_id,omitempty" json:"distributor_id,omitempty"`
	Status        *string             `form:"status,omitempty" json:"status,omitempty"`
	From          *time.Time          `form:"from,omitempty" json:"from,omitempty"`
	To            *time.Time          `form:"to,omitempty" json:"to,omitempty"`
}

// ListPartnersParams defines parameters for ListPartners.
type ListPartnersParams struct {
	Type   *string `form:"type,omitempty" json:"type,omitempty"`
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// GetProductParams defines parameters for GetProduct.
type GetProductParams struct {
	Tier *string `form:"tier,omitempty" json:"tier,omitempty"`
}
