package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// SupplierType classifies where a delivery comes from. It is recorded when a
// supplier is created from the receiving desk and shown in the directory.
type SupplierType string

const (
	SupplierTypeDistributor  SupplierType = "distributor"
	SupplierTypeWholesaler   SupplierType = "wholesaler"
	SupplierTypeManufacturer SupplierType = "manufacturer"
	SupplierTypeFarmer       SupplierType = "farmer"
)

// DefaultSupplierType is used when the operator does not pick one
const DefaultSupplierType = SupplierTypeDistributor

func (t SupplierType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known supplier types
func (t SupplierType) IsValid() bool {
	switch t {
	case SupplierTypeDistributor, SupplierTypeWholesaler, SupplierTypeManufacturer, SupplierTypeFarmer:
		return true
	}
	return false
}

// OrDefault returns DefaultSupplierType for an empty type
func (t SupplierType) OrDefault() SupplierType {
	if t == "" {
		return DefaultSupplierType
	}
	return t
}

func (t SupplierType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *SupplierType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = SupplierType(strings.ToLower(strings.TrimSpace(str)))
	return nil
}

func (t SupplierType) Value() (driver.Value, error) {
	return string(t.OrDefault()), nil
}

func (t *SupplierType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = SupplierType(v)
	case []byte:
		*t = SupplierType(string(v))
	default:
		*t = DefaultSupplierType
	}
	return nil
}
