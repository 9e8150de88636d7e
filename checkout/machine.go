package checkout

// Checkout steps. Transitions run strictly forward; stepping back is
// allowed from payment to shipping and from review to payment.
type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
	StepPlaced   Step = "placed"
)

// Shipping methods.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

// Payment methods.
const (
	PaymentCreditCard   = "credit_card"
	PaymentPayPal       = "paypal"
	PaymentBankTransfer = "bank_transfer"
)

func ValidShippingMethod(m string) bool {
	return m == ShippingStandard || m == ShippingExpress
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentBankTransfer:
		return true
	}
	return false
}

// NextStep returns the step a "continue" action moves to.
func NextStep(s Step) (Step, bool) {
	switch s {
	case StepShipping:
		return StepPayment, true
	case StepPayment:
		return StepReview, true
	case StepReview:
		return StepPlaced, true
	}
	return s, false
}

// PrevStep returns the step a "back" action moves to.
func PrevStep(s Step) (Step, bool) {
	switch s {
	case StepPayment:
		return StepShipping, true
	case StepReview:
		return StepPayment, true
	}
	return s, false
}
