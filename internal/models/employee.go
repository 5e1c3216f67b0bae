package models

import "github.com/shopspring/decimal"

//nolint:gochecknoinits // salary must leave the API as a JSON number, not a quoted string
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Employee represents an employee entity.
type Employee struct {
	ID       int             `json:"id"       gorm:"primaryKey;autoIncrement"`
	Name     string          `json:"name"     gorm:"type:varchar(255);not null"`
	Position string          `json:"position" gorm:"type:varchar(255);not null"`
	Salary   decimal.Decimal `json:"salary"   gorm:"type:decimal(18,2);not null"`
}

// TableName pins the table name regardless of the naming strategy.
func (Employee) TableName() string {
	return "employees"
}
