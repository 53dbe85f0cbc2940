package amortization

import "fmt"

// PaymentType - способ погашения кредита
type PaymentType string

const (
	PaymentAnnuity        PaymentType = "annuity"
	PaymentDifferentiated PaymentType = "differentiated"
)

func (t PaymentType) String() string {
	return string(t)
}

func (t PaymentType) Validate() error {
	switch t {
	case PaymentAnnuity, PaymentDifferentiated:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPaymentType, string(t))
	}
}

// InterestType - какой итог по всему кредиту показать рядом с графиком (справочно)
type InterestType string

const (
	InterestSimple   InterestType = "simple"
	InterestCompound InterestType = "compound"
)

func (t InterestType) Validate() error {
	switch t {
	case "", InterestSimple, InterestCompound:
		return nil
	default:
		return fmt.Errorf("%w: unknown interest type %q", ErrInvalidParams, string(t))
	}
}
