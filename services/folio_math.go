package services

import "github.com/shopspring/decimal"

// Pure ledger arithmetic. Everything is fixed-point decimal: percentages come
// from the property row, amounts round to 2 places at computation time so the
// stored aggregates stay exact across repeated add/void cycles.

// percentOf returns amount * rate/100 rounded to 2 places.
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}

// chargeAmounts computes the contribution of one charge line:
// total = quantity * unitPrice, tax and service charge as percentages of total.
func chargeAmounts(quantity, unitPrice, taxRate, serviceChargeRate decimal.Decimal) (total, tax, serviceCharge decimal.Decimal) {
	total = quantity.Mul(unitPrice).Round(2)
	tax = percentOf(total, taxRate)
	serviceCharge = percentOf(total, serviceChargeRate)
	return total, tax, serviceCharge
}

// applyTotals recomputes the two derived aggregates from the three primary
// ones. Balance may legally be negative (overpayment) and is never clamped.
func applyTotals(subtotal, tax, serviceCharge, paid decimal.Decimal) (totalAmount, balance decimal.Decimal) {
	totalAmount = subtotal.Add(tax).Add(serviceCharge)
	balance = totalAmount.Sub(paid)
	return totalAmount, balance
}
