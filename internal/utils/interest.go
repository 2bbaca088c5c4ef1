package utils

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/bank-clients/internal/models"
)

const kopecks = 2

var (
	hundred    = decimal.NewFromInt(100)
	daysInYear = decimal.NewFromInt(365)
)

// SimpleInterestFinal returns the amount accrued from start to end at a
// yearly simple interest rate given in percent, rounded to kopecks. A period
// that ends before it starts accrues nothing.
func SimpleInterestFinal(amount, ratePercent float64, start, end models.Date) float64 {
	principal := decimal.NewFromFloat(amount)
	days := start.DaysUntil(end)
	if days <= 0 {
		return principal.Round(kopecks).InexactFloat64()
	}

	accrued := principal.
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(hundred).
		Mul(decimal.NewFromInt(int64(days))).
		Div(daysInYear)

	return principal.Add(accrued).Round(kopecks).InexactFloat64()
}

// PercentOf returns share percent of amount, rounded to kopecks.
func PercentOf(amount, share float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(share)).
		Div(hundred).
		Round(kopecks).
		InexactFloat64()
}
