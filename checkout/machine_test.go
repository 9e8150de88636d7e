package checkout

import "testing"

func TestNextStep(t *testing.T) {
	tests := []struct {
		from Step
		want Step
		ok   bool
	}{
		{StepShipping, StepPayment, true},
		{StepPayment, StepReview, true},
		{StepReview, StepPlaced, true},
		{StepPlaced, StepPlaced, false},
	}

	for _, tt := range tests {
		got, ok := NextStep(tt.from)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NextStep(%s) = %s, %v; want %s, %v", tt.from, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPrevStep(t *testing.T) {
	tests := []struct {
		from Step
		want Step
		ok   bool
	}{
		{StepPayment, StepShipping, true},
		{StepReview, StepPayment, true},
		{StepShipping, StepShipping, false},
		{StepPlaced, StepPlaced, false},
	}

	for _, tt := range tests {
		got, ok := PrevStep(tt.from)
		if got != tt.want || ok != tt.ok {
			t.Errorf("PrevStep(%s) = %s, %v; want %s, %v", tt.from, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidShippingMethod(t *testing.T) {
	for _, m := range []string{ShippingStandard, ShippingExpress} {
		if !ValidShippingMethod(m) {
			t.Errorf("%q should be valid", m)
		}
	}
	if ValidShippingMethod("overnight") {
		t.Error("overnight should be rejected")
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PaymentCreditCard, PaymentPayPal, PaymentBankTransfer} {
		if !ValidPaymentMethod(m) {
			t.Errorf("%q should be valid", m)
		}
	}
	if ValidPaymentMethod("cheque") {
		t.Error("cheque should be rejected")
	}
}
