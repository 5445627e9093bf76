package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentType represents how much of a goods receipt is settled up front
type PaymentType string

const (
	PaymentTypeUnset    PaymentType = ""
	PaymentTypeFull     PaymentType = "full"
	PaymentTypePartial  PaymentType = "partial"
	PaymentTypeDeferred PaymentType = "deferred"
)

func (t PaymentType) String() string {
	return string(t)
}

// IsSet reports whether an operator has chosen a payment type
func (t PaymentType) IsSet() bool {
	return t != PaymentTypeUnset
}

// IsValid reports whether t is unset or one of the known types
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeUnset, PaymentTypeFull, PaymentTypePartial, PaymentTypeDeferred:
		return true
	}
	return false
}

// OrFull returns t, or PaymentTypeFull when t is unset
func (t PaymentType) OrFull() PaymentType {
	if t == PaymentTypeUnset {
		return PaymentTypeFull
	}
	return t
}

func (t PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = PaymentType(str)
	return nil
}

func (t PaymentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentTypeUnset
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PaymentType(v)
	case []byte:
		*t = PaymentType(string(v))
	}
	return nil
}
