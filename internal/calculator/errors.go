package calculator

import (
	"fmt"

	"github.com/mmynk/settleup/internal/money"
)

// Kind classifies a calculator failure.
type Kind string

const (
	KindEmptyPeopleList    Kind = "empty_people_list"
	KindInvalidPerson      Kind = "invalid_person"
	KindInvalidFormat      Kind = "invalid_format"
	KindInvalidAmount      Kind = "invalid_amount"
	KindUnknownPayer       Kind = "unknown_payer"
	KindNegativeShare      Kind = "negative_share"
	KindShareMismatch      Kind = "share_mismatch"
	KindOutOfRange         Kind = "out_of_range"
	KindInvariantViolation Kind = "invariant_violation"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrEmptyPeopleList    = &Error{Kind: KindEmptyPeopleList}
	ErrInvalidPerson      = &Error{Kind: KindInvalidPerson}
	ErrInvalidFormat      = &Error{Kind: KindInvalidFormat}
	ErrInvalidAmount      = &Error{Kind: KindInvalidAmount}
	ErrUnknownPayer       = &Error{Kind: KindUnknownPayer}
	ErrNegativeShare      = &Error{Kind: KindNegativeShare}
	ErrShareMismatch      = &Error{Kind: KindShareMismatch}
	ErrOutOfRange         = &Error{Kind: KindOutOfRange}
	ErrInvariantViolation = &Error{Kind: KindInvariantViolation}
)

// Error is returned by every failing calculator operation.
// Row is 1-based and zero for errors not tied to a transaction row.
type Error struct {
	Kind Kind
	Row  int

	// Person is the offending payer (KindUnknownPayer) or people entry (KindInvalidPerson).
	Person string

	// TotalShares and Amount are set for KindShareMismatch.
	TotalShares money.Cents
	Amount      money.Cents

	// Detail describes an invariant violation or why a row was malformed.
	Detail string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyPeopleList:
		return "Please provide at least one person."
	case KindInvalidPerson:
		if e.Person == "" {
			return "Person names must not be blank."
		}
		return fmt.Sprintf("Person '%s' is listed more than once.", e.Person)
	case KindInvalidFormat:
		return fmt.Sprintf("Row %d: invalid transaction format.", e.Row)
	case KindInvalidAmount:
		return fmt.Sprintf("Row %d: amount must be > 0.", e.Row)
	case KindUnknownPayer:
		return fmt.Sprintf("Row %d: payer '%s' is not in the people list.", e.Row, e.Person)
	case KindNegativeShare:
		return fmt.Sprintf("Row %d: shares must be ≥ 0.", e.Row)
	case KindShareMismatch:
		return fmt.Sprintf("Row %d: sum of per-person shares (%s) does not equal the total amount (%s).",
			e.Row, e.TotalShares, e.Amount)
	case KindOutOfRange:
		return fmt.Sprintf("Row %d: amount is out of range.", e.Row)
	case KindInvariantViolation:
		return "invariant violation: " + e.Detail
	default:
		return string(e.Kind)
	}
}

// Is matches on Kind so callers can write errors.Is(err, calculator.ErrShareMismatch).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// IsValidation reports whether the error is caused by caller input rather than a bug.
func (e *Error) IsValidation() bool {
	return e.Kind != KindInvariantViolation
}

func invariant(format string, args ...any) *Error {
	return &Error{Kind: KindInvariantViolation, Detail: fmt.Sprintf(format, args...)}
}
