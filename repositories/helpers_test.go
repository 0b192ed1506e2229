package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

func gormNotFound() error  { return fmt.Errorf("sorgu: %w", gorm.ErrRecordNotFound) }
func gormDuplicate() error { return fmt.Errorf("ekleme: %w", gorm.ErrDuplicatedKey) }
