package receiving

import (
	"github.com/cockroachdb/errors"
)

// Error categories. Every error the engine or the staging service returns is
// marked with exactly one of these so callers can route it with errors.Is.
var (
	ErrPrecondition = errors.New("commit precondition failed")
	ErrCreation     = errors.New("catalog creation failed")
	ErrCommit       = errors.New("commit rejected")
	ErrPersistence  = errors.New("draft persistence failed")
)

// Commit preconditions, checked in this order.
var (
	ErrEmptyLedger          = errors.New("draft has no line items")
	ErrPaymentMethodMissing = errors.New("payment method not selected")
	ErrPaymentTypeMissing   = errors.New("payment type not selected")
	ErrPartialAmountMissing = errors.New("partial payment amount must be greater than zero")
	ErrPriceUpdateDenied    = errors.New("caller may not update catalog prices")
)

var preconditionHints = map[error]string{
	ErrEmptyLedger:          "Add at least one item to the receipt before saving.",
	ErrPaymentMethodMissing: "Choose a payment method (cash or bank transfer).",
	ErrPaymentTypeMissing:   "Choose a payment type (full, partial or deferred).",
	ErrPartialAmountMissing: "Enter the amount paid now for a partial payment.",
	ErrPriceUpdateDenied:    "You do not have permission to update catalog prices.",
}

func preconditionFailure(check error) error {
	err := errors.Mark(errors.New(check.Error()), check)
	err = errors.Mark(err, ErrPrecondition)
	return errors.WithHint(err, preconditionHints[check])
}

// CreationFailure wraps an error returned by the catalog item creator or the
// supplier directory.
func CreationFailure(err error, what string) error {
	return errors.Mark(errors.Wrapf(err, "create %s", what), ErrCreation)
}

// CommitFailure wraps an error returned by the commit sink.
func CommitFailure(err error) error {
	return errors.WithHint(
		errors.Mark(errors.Wrap(err, "commit goods receipt"), ErrCommit),
		"The receipt could not be saved. Your draft is kept, please retry.",
	)
}

// PersistenceFailure wraps a draft store or snapshot encoding error.
func PersistenceFailure(err error, op string) error {
	return errors.Mark(errors.Wrapf(err, "draft %s", op), ErrPersistence)
}

// IsPrecondition reports whether err is a failed commit precondition.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

// IsCreation reports whether err came from item or supplier creation.
func IsCreation(err error) bool {
	return errors.Is(err, ErrCreation)
}

// IsCommit reports whether err came from the commit sink.
func IsCommit(err error) bool {
	return errors.Is(err, ErrCommit)
}

// Hint returns the operator-facing message attached to err, if any.
func Hint(err error) string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return ""
	}
	return hints[0]
}
