package checkout

import (
	"strings"
	"testing"

	"birdpacker/models"
)

func TestCardLastFour(t *testing.T) {
	if _, ok := cardLastFour("123"); ok {
		t.Error("a card number shorter than four digits must be rejected")
	}
	got, ok := cardLastFour("4242424242424242")
	if !ok || got != "4242" {
		t.Errorf("cardLastFour = %q, %v; want 4242, true", got, ok)
	}
}

// Walks a session through the whole machine and checks the resulting
// order against the cart it came from.
func TestCheckoutFlowBuildsConsistentOrder(t *testing.T) {
	sess := &Session{
		UserID:         "u1",
		Step:           StepShipping,
		ShippingMethod: ShippingStandard,
	}

	sess.ShippingAddress = models.ShippingAddress{
		Name: "A", Street: "B", City: "C", ZipCode: "D", Country: "E",
	}
	sess.ShippingMethod = ShippingExpress
	sess.Step, _ = NextStep(sess.Step)
	if sess.Step != StepPayment {
		t.Fatalf("after shipping, step = %s", sess.Step)
	}

	sess.PaymentMethod = PaymentCreditCard
	sess.LastFourDigits, _ = cardLastFour("4242424242424242")
	sess.Step, _ = NextStep(sess.Step)
	if sess.Step != StepReview {
		t.Fatalf("after payment, step = %s", sess.Step)
	}

	items := []models.CartItem{
		{ProductID: "p1", Name: "Kaos", Price: 100000, Quantity: 2},
		{ProductID: "p2", Name: "Peta", Price: 50000, Quantity: 1},
	}

	order := buildOrder(sess, items)

	if order.Subtotal != 250000 || order.Shipping != 15 || order.Tax != 25000 || order.Total != 275015 {
		t.Fatalf("totals = %d/%d/%d/%d, want 250000/15/25000/275015",
			order.Subtotal, order.Shipping, order.Tax, order.Total)
	}
	if order.Total != order.Subtotal+order.Shipping+order.Tax {
		t.Fatal("total must equal subtotal + shipping + tax")
	}
	if order.Status != models.OrderProcessing {
		t.Fatalf("new order status = %s", order.Status)
	}
	if order.UserID != "u1" || order.LastFourDigits != "4242" {
		t.Fatalf("order owner/card snapshot wrong: %s %s", order.UserID, order.LastFourDigits)
	}
	if len(order.Items) != 2 || order.Items[0].Quantity != 2 || order.Items[1].Price != 50000 {
		t.Fatalf("item snapshot wrong: %+v", order.Items)
	}
	if !strings.HasPrefix(order.OrderNumber, "ORD-") || order.OrderID == "" {
		t.Fatalf("order references missing: %q %q", order.OrderID, order.OrderNumber)
	}

	sess.Step, _ = NextStep(sess.Step)
	if sess.Step != StepPlaced {
		t.Fatalf("after review, step = %s", sess.Step)
	}
}
