package enum

import "encoding/json"

// DiscountMode represents how the draft discount value is interpreted
type DiscountMode string

const (
	// DiscountModeAmount treats the discount as minor currency units
	DiscountModeAmount DiscountMode = "amount"
	// DiscountModePercent treats the discount as a whole percentage of the subtotal
	DiscountModePercent DiscountMode = "percent"
)

func (m DiscountMode) String() string {
	if m == "" {
		return string(DiscountModeAmount)
	}
	return string(m)
}

// IsValid reports whether m is a known mode; the empty mode counts as amount
func (m DiscountMode) IsValid() bool {
	switch m {
	case "", DiscountModeAmount, DiscountModePercent:
		return true
	}
	return false
}

func (m DiscountMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *DiscountMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "percent", "percentage", "%":
		*m = DiscountModePercent
	default:
		*m = DiscountModeAmount
	}
	return nil
}
