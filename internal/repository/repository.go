package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ошибки уровня хранилища. Доменный слой переводит их в свои типы.
var (
	// ErrOverlap — вставка/перенос записи пересекается с существующей
	// блокирующей записью того же мастера.
	ErrOverlap = errors.New("booking interval overlaps an existing booking")
	// ErrStale — условное обновление не нашло строку в ожидаемом статусе.
	ErrStale = errors.New("row is not in the expected status")
)

// lockForUpdate вешает строчную блокировку на выборку.
// На sqlite (используется в тестах) FOR UPDATE не поддерживается,
// там записи сериализует сам движок.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
