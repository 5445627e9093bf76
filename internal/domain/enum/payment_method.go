package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a goods receipt is paid
type PaymentMethod string

const (
	PaymentMethodUnset        PaymentMethod = ""
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsSet reports whether an operator has chosen a payment method
func (m PaymentMethod) IsSet() bool {
	return m != PaymentMethodUnset
}

// IsValid reports whether m is unset or one of the known methods
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodUnset, PaymentMethodCash, PaymentMethodBankTransfer:
		return true
	}
	return false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	// the storefront sends "bank-transfer"
	if str == "bank-transfer" {
		str = string(PaymentMethodBankTransfer)
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodUnset
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
