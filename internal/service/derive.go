package service

import (
	"time"

	"garage/internal/model"

	"github.com/shopspring/decimal"
)

// GST is charged at a flat 10% on the discounted amount.
var gstRate = decimal.NewFromInt(10).Div(decimal.NewFromInt(100))

// periodOf returns the calendar month (1-12) and year of t. Callers must
// always write these back alongside the date field itself so the
// denormalized period columns never drift.
func periodOf(t time.Time) (month, year int) {
	return int(t.Month()), t.Year()
}

// supplyLineAmounts computes the derived money fields of a supply line:
// gst = round2(price * quantity * 10%), total = round2(price * quantity + gst).
func supplyLineAmounts(price decimal.Decimal, quantity int) (gst, total decimal.Decimal) {
	base := price.Mul(decimal.NewFromInt(int64(quantity)))
	gst = base.Mul(gstRate).Round(2)
	total = base.Add(gst).Round(2)
	return gst, total
}

// carServiceAmounts computes the derived money fields of a car service from
// its line items and discount. The discount is applied to the item total
// before GST is computed on the discounted amount; that ordering matters.
func carServiceAmounts(items []model.CarServiceItem, discountType *string, discountAmount *decimal.Decimal) (total, final, gst decimal.Decimal) {
	total = decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	final = total
	if discountType != nil && discountAmount != nil {
		switch *discountType {
		case model.DiscountTypePercentage:
			final = total.Sub(total.Mul(*discountAmount).Div(decimal.NewFromInt(100)))
		case model.DiscountTypeFixed:
			final = total.Sub(*discountAmount)
		}
	}
	final = final.Round(2)

	gst = final.Mul(gstRate).Round(2)
	return total, final, gst
}
