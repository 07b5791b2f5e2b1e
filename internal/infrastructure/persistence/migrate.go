package persistence

import (
	"github.com/21501a05b6/Magnova/internal/domain/identity"
	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/21501a05b6/Magnova/internal/domain/payment"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all tracked aggregates
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&procurement.PurchaseOrder{},
		&procurement.POItem{},
		&inventory.InventoryUnit{},
		&logistics.Shipment{},
		&logistics.ShipmentUnit{},
		&payment.Payment{},
		&identity.User{},
	)
}
