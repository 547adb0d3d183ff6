package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей ядра бронирования.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Professional{},
		&Service{},
		&AvailabilityRule{},
		&AvailabilityException{},
		&Booking{},
		&Review{},
		&PaymentEvent{},
	)
}
