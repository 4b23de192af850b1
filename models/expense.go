package models

import "time"

// Expense is a single spending record. Every expense belongs to exactly one
// user, fixed at creation; all reads and writes are scoped by that owner.
// Deletion is a hard delete, so there is deliberately no DeletedAt column.
type Expense struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"ownerId" gorm:"index;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category  string    `json:"category" gorm:"size:50;not null"`
	Note      string    `json:"note,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// TableName sets the table name.
func (Expense) TableName() string {
	return "expenses"
}

// Categories offered by the client UI. The server intentionally does not
// validate submitted categories against this list; it only serves the list
// so clients can render a menu.
const (
	CategoryFood        = "Food"
	CategoryTravel      = "Travel"
	CategoryGrocery     = "Grocery"
	CategoryRent        = "Rent"
	CategoryElectricity = "Electricity Bill"
	CategoryFuel        = "Fuel"
	CategoryOther       = "Other"
)

// GetCategories returns the client-facing category menu.
func GetCategories() []string {
	return []string{
		CategoryFood,
		CategoryTravel,
		CategoryGrocery,
		CategoryRent,
		CategoryElectricity,
		CategoryFuel,
		CategoryOther,
	}
}
