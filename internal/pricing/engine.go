// Package pricing converts a raw supplier cost into the final
// marketplace selling price under the supplier's VAT, withholding,
// fee and commission configuration.
package pricing

import (
	"fmt"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/shopspring/decimal"
)

// expenseVATRate is the VAT rate assumed for shipping and service fee
// inputs and for the commission decomposition, regardless of the
// configured product VAT rates. This is a business rule carried over
// unchanged; changing it changes financial outcomes.
var expenseVATRate = decimal.NewFromFloat(0.20)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Engine computes selling prices.
type Engine struct{}

// NewEngine returns a new pricing Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SellingPrice returns the selling price for a product bought at cost.
// Rules are scanned in order and the first rule whose half-open
// interval [MinPrice, MaxPrice) contains cost short-circuits the tax
// model entirely. When no rule matches, the price is solved from the
// full VAT model as a closed-form fixed point. commissionRate is the
// category commission percentage; nil falls back to the supplier
// default. The result is rounded to 2 decimal places.
func (e *Engine) SellingPrice(
	cost decimal.Decimal,
	settings models.SupplierSettings,
	rules []models.PriceRule,
	commissionRate *decimal.Decimal,
) (decimal.Decimal, error) {
	for _, rule := range rules {
		if cost.GreaterThanOrEqual(rule.MinPrice) && cost.LessThan(rule.MaxPrice) {
			return e.applyRule(cost, rule, settings, commissionRate)
		}
	}

	return e.solveTaxModel(cost, settings, commissionRate)
}

// applyRule computes the price from a matched override rule.
func (e *Engine) applyRule(
	cost decimal.Decimal,
	rule models.PriceRule,
	settings models.SupplierSettings,
	commissionRate *decimal.Decimal,
) (decimal.Decimal, error) {
	var price decimal.Decimal

	switch rule.OperationType {
	case models.OperationPercentage:
		factor := rule.Value.Div(hundred)
		if rule.RuleType == models.RuleDecrease {
			factor = factor.Neg()
		}
		price = cost.Mul(one.Add(factor))
	default:
		if rule.RuleType == models.RuleDecrease {
			price = cost.Sub(rule.Value)
		} else {
			price = cost.Add(rule.Value)
		}
	}

	price = price.Add(rule.ExtraCost)

	if settings.IncludeCommission {
		rate := e.effectiveCommission(settings, commissionRate)
		if rate.GreaterThanOrEqual(one) {
			return decimal.Zero, fmt.Errorf("can't gross up commission rate %s: %w", rate, ErrInvalidConfig)
		}
		price = price.Div(one.Sub(rate))
	}

	return e.finalize(price, settings), nil
}

// solveTaxModel solves the circular dependency between the sale price
// and the VAT payable on it. Two cases: when the net VAT payable at the
// solved price is non-negative it is part of the cost base (case A);
// when it turns out negative the model is re-solved with VAT payable
// pinned to zero (case B).
func (e *Engine) solveTaxModel(
	cost decimal.Decimal,
	settings models.SupplierSettings,
	commissionRate *decimal.Decimal,
) (decimal.Decimal, error) {
	buyingVAT := settings.BuyingVATRate.Div(hundred)
	sellingVAT := settings.SellingVATRate.Div(hundred)
	withholding := settings.WithholdingTaxRate.Div(hundred)
	margin := settings.ProfitMargin.Div(hundred)

	netCost := cost
	if settings.BuyingPriceIncludesVAT {
		netCost = cost.Div(one.Add(buyingVAT))
	}

	expenseDivisor := one.Add(expenseVATRate)
	netShipping := settings.ShippingCost.Div(expenseDivisor)
	netService := settings.ServiceFee.Div(expenseDivisor)

	// Withholding is charged on the gross input cost, not the net.
	withholdingTax := cost.Mul(withholding)

	fixedCostsNet := netCost.Add(netShipping).Add(netService).Add(withholdingTax)

	// VAT on the inputs is deductible either way; an exclusive buying
	// price means it was paid on top, not that it wasn't paid.
	deductibleVAT := netCost.Mul(buyingVAT).
		Add(netShipping.Mul(expenseVATRate)).
		Add(netService.Mul(expenseVATRate))

	marginFactor := one.Add(margin)

	commRate := decimal.Zero
	if settings.IncludeCommission {
		commRate = e.effectiveCommission(settings, commissionRate)
	}
	commNet := commRate.Div(expenseDivisor)
	commVAT := commRate.Sub(commNet)

	outVAT := sellingVAT.Div(one.Add(sellingVAT))

	// Case A: net VAT payable is part of the costs.
	denominator := one.Sub(marginFactor.Mul(commNet.Add(outVAT).Sub(commVAT)))
	if !denominator.IsPositive() {
		return decimal.Zero, fmt.Errorf("can't solve price with margin %s and commission %s: %w",
			margin, commRate, ErrInvalidConfig)
	}
	price := marginFactor.Mul(fixedCostsNet.Sub(deductibleVAT)).Div(denominator)

	payableVAT := price.Mul(outVAT).Sub(deductibleVAT.Add(price.Mul(commVAT)))
	if payableVAT.IsNegative() {
		// Case B: deductible VAT exceeds output VAT, nothing payable.
		denominator = one.Sub(marginFactor.Mul(commNet))
		if !denominator.IsPositive() {
			return decimal.Zero, fmt.Errorf("can't solve price with margin %s and commission %s: %w",
				margin, commRate, ErrInvalidConfig)
		}
		price = marginFactor.Mul(fixedCostsNet).Div(denominator)
	}

	return e.finalize(price, settings), nil
}

// effectiveCommission returns the commission as a fraction, preferring
// the category rate over the supplier default.
func (e *Engine) effectiveCommission(settings models.SupplierSettings, categoryRate *decimal.Decimal) decimal.Decimal {
	if categoryRate != nil {
		return categoryRate.Div(hundred)
	}
	return settings.DefaultCommissionRate.Div(hundred)
}

// finalize applies the psychological .99 rounding when configured and
// rounds to 2 decimal places.
func (e *Engine) finalize(price decimal.Decimal, settings models.SupplierSettings) decimal.Decimal {
	if settings.PriceRounding {
		price = price.Floor().Add(decimal.NewFromFloat(0.99))
	}
	return price.Round(2)
}
