package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType represents how a bill-level discount is expressed:
// a percentage of the discounted subtotal or a flat currency amount.
type DiscountType string

const (
	DiscountTypeAmount     DiscountType = "amount"
	DiscountTypePercentage DiscountType = "percentage"
)

func (d DiscountType) String() string {
	return string(d)
}

// Valid reports whether the value is one of the known discount types.
func (d DiscountType) Valid() bool {
	return d == DiscountTypeAmount || d == DiscountTypePercentage
}

func (d DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

func (d *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*d = DiscountType(str)
	return nil
}

func (d DiscountType) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*d = DiscountTypeAmount
		return nil
	}
	switch v := value.(type) {
	case string:
		*d = DiscountType(v)
	case []byte:
		*d = DiscountType(v)
	}
	return nil
}
