package pricing

import (
	"math"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/models"
)

// Calculate derives the full price breakdown from itemized components.
// It is the arithmetic ground truth for every display surface, so it does
// no I/O and touches no shared state.
//
// Sign convention: discount and rebate amounts arrive negative, fees positive.
// An "Included" accessory contributes nothing to the total; a positive amount
// on an included accessory is a displayed value-add, not a charge.
func Calculate(
	msrp float64,
	accessories []models.PriceLineItem,
	customAccessories []models.CustomAccessory,
	discounts []models.PriceLineItem,
	rebates []models.PriceLineItem,
	fees []models.PriceLineItem,
	tradeIn float64,
) models.PriceBreakdown {
	var accessoriesTotal float64
	for _, item := range accessories {
		if item.Included {
			continue
		}
		accessoriesTotal += item.Amount
	}

	var customTotal float64
	for _, acc := range customAccessories {
		customTotal += acc.Price
	}

	discountsTotal := sumAmounts(discounts)
	rebatesTotal := sumAmounts(rebates)
	feesTotal := sumAmounts(fees)

	salesPrice := msrp + discountsTotal + rebatesTotal + accessoriesTotal + customTotal
	totalPrice := salesPrice + feesTotal

	return models.PriceBreakdown{
		MSRP:                 roundCents(msrp),
		AccessoriesTotal:     roundCents(accessoriesTotal),
		CustomAccessoryTotal: roundCents(customTotal),
		DiscountsTotal:       roundCents(discountsTotal),
		RebatesTotal:         roundCents(rebatesTotal),
		FeesTotal:            roundCents(feesTotal),
		SalesPrice:           roundCents(salesPrice),
		TotalPrice:           roundCents(totalPrice),
		TotalWithTradeIn:     roundCents(totalPrice - tradeIn),
		Savings:              roundCents(math.Abs(discountsTotal + rebatesTotal)),
	}
}

func sumAmounts(items []models.PriceLineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// roundCents rounds to two decimal places. All breakdown fields pass through
// here so surfaces that re-add components agree bit-for-bit.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateMonthlyPayment computes an amortizing-loan payment:
//
//	payment = (loanAmount * monthlyRate) / (1 - (1+monthlyRate)^-term)
//
// with monthlyRate = annualRatePct/100/12 and loanAmount reduced by the down
// payment percentage. A zero rate degenerates to straight division. The
// result is rounded to the nearest whole currency unit for display.
func CalculateMonthlyPayment(principal, downPaymentPct, annualRatePct float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	loanAmount := principal - principal*downPaymentPct/100
	monthlyRate := annualRatePct / 100 / 12
	if monthlyRate == 0 {
		return math.Round(loanAmount / float64(termMonths))
	}
	payment := (loanAmount * monthlyRate) / (1 - math.Pow(1+monthlyRate, -float64(termMonths)))
	return math.Round(payment)
}
