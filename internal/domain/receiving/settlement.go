package receiving

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/investify-receiving/internal/domain/enum"
)

// SettlementInput holds the operator's payment choices. They are not derived
// from the ledger.
type SettlementInput struct {
	PaymentMethod     enum.PaymentMethod `json:"payment_method"`
	PaymentType       enum.PaymentType   `json:"payment_type"`
	PartialAmountPaid int64              `json:"partial_amount_paid"`
}

// Settlement is the computed money breakdown of a draft.
type Settlement struct {
	Subtotal         int64            `json:"subtotal"`
	Discount         int64            `json:"discount"`
	TotalAmount      int64            `json:"total_amount"`
	PaidAmount       int64            `json:"paid_amount"`
	RemainingBalance int64            `json:"remaining_balance"`
	PaymentType      enum.PaymentType `json:"payment_type"`
}

// AppliedDiscount converts a stored discount into minor units for subtotal.
// Percent discounts are bounded to [0, 100]; the result never exceeds the
// subtotal.
func AppliedDiscount(subtotal, discount int64, mode enum.DiscountMode) int64 {
	if discount <= 0 || subtotal <= 0 {
		return 0
	}
	applied := discount
	if mode == enum.DiscountModePercent {
		pct := min(discount, 100)
		applied = decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(pct)).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	}
	return min(applied, subtotal)
}

// ComputeSettlement derives totals and the payment breakdown. An unset
// payment type is treated as full payment.
func ComputeSettlement(subtotal, discount int64, mode enum.DiscountMode, in SettlementInput) Settlement {
	s := Settlement{
		Subtotal:    subtotal,
		Discount:    AppliedDiscount(subtotal, discount, mode),
		PaymentType: in.PaymentType.OrFull(),
	}
	s.TotalAmount = max(0, subtotal-s.Discount)

	switch s.PaymentType {
	case enum.PaymentTypePartial:
		s.PaidAmount = max(0, in.PartialAmountPaid)
		s.RemainingBalance = max(0, s.TotalAmount-s.PaidAmount)
	case enum.PaymentTypeDeferred:
		s.PaidAmount = 0
		s.RemainingBalance = s.TotalAmount
	default:
		s.PaidAmount = s.TotalAmount
	}
	return s
}
