// Package queries contains the read side of the order desk. Handlers read
// straight from the database with SQL and return flat read models.
package queries

import (
	"database/sql"
	"time"

	"medshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const orderColumns = `
	id, order_number,
	customer_name, customer_email, customer_phone, customer_address, customer_state,
	items, delivery_option,
	subtotal, delivery_fee, tax, total_amount,
	status, escalation_level, escalation_date,
	distributor_id, distributor_name,
	acknowledged_at, delivered_at, created_at, updated_at, version`

// ItemView is a stored order line.
type ItemView struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CustomerView struct {
	Name    string
	Email   string
	Phone   string
	Address string
	State   string
}

// OrderView is the read model of an order.
type OrderView struct {
	ID              kernel.UUID
	Number          string
	Customer        CustomerView
	Items           []ItemView
	DeliveryOption  string
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	Status          string
	EscalationLevel int
	EscalationDate  *time.Time
	DistributorID   *kernel.UUID
	DistributorName string
	AcknowledgedAt  *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

func scanOrderViews(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)
	for rows.Next() {
		var (
			view            OrderView
			id              uuid.UUID
			distributorID   uuid.NullUUID
			distributorName sql.NullString
			items           datatypes.JSONType[[]ItemView]
		)

		err := rows.Scan(
			&id, &view.Number,
			&view.Customer.Name, &view.Customer.Email, &view.Customer.Phone, &view.Customer.Address, &view.Customer.State,
			&items, &view.DeliveryOption,
			&view.Subtotal, &view.DeliveryFee, &view.Tax, &view.Total,
			&view.Status, &view.EscalationLevel, &view.EscalationDate,
			&distributorID, &distributorName,
			&view.AcknowledgedAt, &view.DeliveredAt, &view.CreatedAt, &view.UpdatedAt, &view.Version,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if distributorID.Valid {
			dID, idErr := kernel.UUIDFromBytes(distributorID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.DistributorID = &dID
		}
		view.DistributorName = distributorName.String
		view.Items = items.Data()

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
