package finance

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MaxMoney is the largest magnitude a numeric(14,2) column holds.
var MaxMoney = decimal.RequireFromString("999999999999.99")

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountInUse        = errors.New("account in use")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category in use")
	ErrCategoryNameTaken   = errors.New("category name already exists")
	ErrCurrencyNotFound    = errors.New("currency not found")
	ErrCurrencyNameTaken   = errors.New("currency name already exists")
	ErrSharedReadOnly      = errors.New("shared entry is read-only")
	ErrValidation          = errors.New("validation failed")

	ErrBalanceOutOfRange error = &ValidationError{Field: "amount", Message: "moves the account balance out of range"}
)

// InMoneyRange reports whether v fits the money columns.
func InMoneyRange(v decimal.Decimal) bool {
	return v.Abs().LessThanOrEqual(MaxMoney)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
