package dbmodels

import (
	"fmt"

	"appraisal-backend/models"
)

// Employee — запись справочника сотрудников.
// Справочник ведётся внешней системой, здесь только читаем.
type Employee struct {
	BaseModel
	ExternalID string          `gorm:"type:varchar(64);uniqueIndex"`
	FirstName  string          `gorm:"type:varchar(100)"`
	LastName   string          `gorm:"type:varchar(100)"`
	Email      string          `gorm:"type:varchar(255)"`
	Role       models.UserRole `gorm:"type:varchar(50)"`
	ManagerID  *string         `gorm:"type:varchar(36)"`
	Manager    *Employee
}

func (e Employee) GetFullName() string {
	return fmt.Sprintf("%v %v", e.FirstName, e.LastName)
}
