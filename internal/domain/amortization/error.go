package amortization

import "errors"

var (
	ErrInvalidParams      = errors.New("invalid loan parameters")
	ErrUnknownPaymentType = errors.New("unknown payment type")
)
