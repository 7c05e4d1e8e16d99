package postgres

import (
	"medshop/internal/adapters/out/postgres/orderrepo"
	"medshop/internal/adapters/out/postgres/partnerrepo"
	"medshop/internal/adapters/out/postgres/productrepo"
	"medshop/internal/adapters/out/postgres/seminarrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the order desk owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&partnerrepo.PartnerDTO{},
		&productrepo.ProductDTO{},
		&seminarrepo.SeminarDTO{},
		&seminarrepo.RegistrationDTO{},
	)
	if err != nil {
		return err
	}

	// gorm has no tag for GIN indexes.
	return db.Exec("CREATE INDEX IF NOT EXISTS idx_partners_regions ON partners USING GIN (regions)").Error
}
