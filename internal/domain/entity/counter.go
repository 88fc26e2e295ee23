package entity

import "time"

// CounterInvoice is the name of the persisted invoice-number counter.
const CounterInvoice = "invoice"

// Counter is a named monotonic counter. The invoice counter is read and
// advanced inside the invoice-create transaction so numbers never repeat.
type Counter struct {
	Name      string    `gorm:"primaryKey;size:50" json:"name"`
	Value     int64     `gorm:"not null;default:1" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
