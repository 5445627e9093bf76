package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceiptStatus represents the settlement state of a committed goods receipt
type ReceiptStatus int

const (
	ReceiptStatusUnpaid  ReceiptStatus = 0
	ReceiptStatusPartial ReceiptStatus = 1
	ReceiptStatusPaid    ReceiptStatus = 2
)

func (s ReceiptStatus) String() string {
	names := [...]string{"Unpaid", "Partial", "Paid"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Unpaid"
	}
	return names[s]
}

func (s ReceiptStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReceiptStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReceiptStatus(i)
		return nil
	}
	switch str {
	case "Unpaid":
		*s = ReceiptStatusUnpaid
	case "Partial":
		*s = ReceiptStatusPartial
	case "Paid":
		*s = ReceiptStatusPaid
	}
	return nil
}

func (s ReceiptStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReceiptStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReceiptStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReceiptStatus(v)
	case int:
		*s = ReceiptStatus(v)
	}
	return nil
}
