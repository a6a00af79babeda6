package pricing

import "github.com/shopspring/decimal"

var (
	// TaxRate is the Hawaii general excise tax applied to every quote.
	TaxRate = decimal.RequireFromString("0.04712")
	// DepositRate is the share of the total due up front unless the customer has an explicit amount.
	DepositRate = decimal.RequireFromString("0.5")

	hundred = decimal.NewFromInt(100)
)

// Line is a persisted line item as seen by aggregation.
type Line struct {
	CalculatedPrice *decimal.Decimal
	ManualPrice     *decimal.Decimal
}

// Amount returns the manual override when present, else the calculated price, else zero.
func (l Line) Amount() decimal.Decimal {
	switch {
	case l.ManualPrice != nil:
		return *l.ManualPrice
	case l.CalculatedPrice != nil:
		return *l.CalculatedPrice
	default:
		return decimal.Zero
	}
}

// Terms carries the order-level inputs stored on the customer.
type Terms struct {
	DiscountPercent decimal.Decimal
	DownPayment     *decimal.Decimal
}

// Totals is the order-level breakdown shared by the customer view, estimate and contract.
type Totals struct {
	WindowsTotal    decimal.Decimal `json:"windows_total"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	Balance         decimal.Decimal `json:"balance"`
}

// Aggregate recomputes order totals from scratch. Each component is rounded to cents as it
// is produced and later components are derived from the rounded values. Negative inputs are
// not clamped.
func Aggregate(lines []Line, terms Terms) Totals {
	windowsTotal := decimal.Zero
	for _, line := range lines {
		windowsTotal = windowsTotal.Add(line.Amount())
	}
	windowsTotal = RoundCents(windowsTotal)

	discount := RoundCents(windowsTotal.Mul(terms.DiscountPercent).Div(hundred))
	subtotal := windowsTotal.Sub(discount)
	tax := RoundCents(subtotal.Mul(TaxRate))
	total := subtotal.Add(tax)

	downPayment := RoundCents(total.Mul(DepositRate))
	if terms.DownPayment != nil {
		downPayment = RoundCents(*terms.DownPayment)
	}

	return Totals{
		WindowsTotal:    windowsTotal,
		DiscountPercent: terms.DiscountPercent,
		DiscountAmount:  discount,
		Subtotal:        subtotal,
		TaxRate:         TaxRate,
		TaxAmount:       tax,
		Total:           total,
		DownPayment:     downPayment,
		Balance:         total.Sub(downPayment),
	}
}
