package checkout

// ExpressSurcharge is the flat express-shipping fee; standard
// shipping is free.
const ExpressSurcharge int64 = 15

// taxRatePercent is the flat tax applied to the cart subtotal.
const taxRatePercent = 10

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

func ShippingCost(method string) int64 {
	if method == ShippingExpress {
		return ExpressSurcharge
	}
	return 0
}

// ComputeTotals derives the order totals from the cart subtotal and
// the chosen shipping method. Total is always subtotal + shipping +
// tax.
func ComputeTotals(subtotal int64, shippingMethod string) Totals {
	shipping := ShippingCost(shippingMethod)
	tax := subtotal * taxRatePercent / 100
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
