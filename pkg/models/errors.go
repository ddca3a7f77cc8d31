package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidFilter    = errors.New("invalid filter")
)

var (
	ErrNameEmpty              = fmt.Errorf("%w: the name must not be empty", ErrValidation)
	ErrAmountNegative         = fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	ErrGoalTargetNotPositive  = fmt.Errorf("%w: the target amount of a goal must be positive", ErrValidation)
	ErrEffectiveFromMissing   = fmt.Errorf("%w: the effective month must be set", ErrValidation)
	ErrAccountTypeUnknown     = fmt.Errorf("%w: unknown account type", ErrValidation)
	ErrTransactionTypeUnknown = fmt.Errorf("%w: unknown transaction type", ErrValidation)
	ErrAccountMissing         = fmt.Errorf("%w: an account must be referenced", ErrValidation)
	ErrRecurrenceEndInvalid   = fmt.Errorf("%w: a recurrence end is only allowed for recurring expenses", ErrValidation)
	ErrBucketMissing          = fmt.Errorf("%w: a bucket must be referenced", ErrValidation)
)
