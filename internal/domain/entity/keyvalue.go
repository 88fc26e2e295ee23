package entity

import "time"

// KeyValue is the durable local key-value store backing the license
// credential cache and the generated device token. Same value out for the
// same key in, nothing more.
type KeyValue struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the KeyValue model
func (KeyValue) TableName() string {
	return "key_values"
}
