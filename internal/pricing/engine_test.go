package pricing_test

import (
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/marketfeed/trendyol-sync/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellingPriceRulePath(t *testing.T) {
	tests := map[string]struct {
		cost           decimal.Decimal
		settings       models.SupplierSettings
		rules          []models.PriceRule
		commissionRate *decimal.Decimal
		expected       string
	}{
		"percentage increase with extra cost": {
			cost: decimal.NewFromInt(100),
			rules: []models.PriceRule{
				rule(50, 200, models.RuleIncrease, models.OperationPercentage, 10, 5),
			},
			expected: "115.00",
		},
		"fixed decrease": {
			cost: decimal.NewFromInt(100),
			rules: []models.PriceRule{
				rule(0, 500, models.RuleDecrease, models.OperationFixed, 20, 0),
			},
			expected: "80.00",
		},
		"first matching rule wins": {
			cost: decimal.NewFromInt(100),
			rules: []models.PriceRule{
				rule(50, 200, models.RuleIncrease, models.OperationFixed, 10, 0),
				rule(50, 200, models.RuleIncrease, models.OperationFixed, 999, 0),
			},
			expected: "110.00",
		},
		"commission gross-up": {
			cost: decimal.NewFromInt(100),
			settings: models.SupplierSettings{
				IncludeCommission:     true,
				DefaultCommissionRate: decimal.NewFromInt(10),
			},
			rules: []models.PriceRule{
				rule(0, 500, models.RuleIncrease, models.OperationPercentage, 15, 0),
			},
			commissionRate: ptr(decimal.NewFromInt(20)),
			expected:       "143.75",
		},
		"psychological rounding": {
			cost: decimal.NewFromInt(100),
			settings: models.SupplierSettings{
				PriceRounding: true,
			},
			rules: []models.PriceRule{
				rule(0, 500, models.RuleIncrease, models.OperationPercentage, 15, 0),
			},
			expected: "115.99",
		},
	}

	engine := pricing.NewEngine()

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			price, err := engine.SellingPrice(tt.cost, tt.settings, tt.rules, tt.commissionRate)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, price.StringFixed(2))
		})
	}
}

// A matching rule must short-circuit the tax model entirely. The
// settings below would produce a very different price through the VAT
// path, so getting the cost back unchanged proves the rule path ran.
func TestSellingPriceRulePrecedence(t *testing.T) {
	t.Parallel()

	settings := models.SupplierSettings{
		ProfitMargin:           decimal.NewFromInt(50),
		BuyingPriceIncludesVAT: true,
		BuyingVATRate:          decimal.NewFromInt(20),
		SellingVATRate:         decimal.NewFromInt(20),
	}
	rules := []models.PriceRule{
		rule(0, 1000, models.RuleIncrease, models.OperationFixed, 0, 0),
	}

	price, err := pricing.NewEngine().SellingPrice(decimal.NewFromInt(100), settings, rules, nil)

	require.NoError(t, err)
	assert.Equal(t, "100.00", price.StringFixed(2))
}

func TestSellingPriceTaxModel(t *testing.T) {
	tests := map[string]struct {
		cost     decimal.Decimal
		settings models.SupplierSettings
		rules    []models.PriceRule
		expected string
	}{
		"vat payable positive": {
			cost: decimal.NewFromInt(120),
			settings: models.SupplierSettings{
				ProfitMargin:           decimal.NewFromInt(50),
				BuyingPriceIncludesVAT: true,
				BuyingVATRate:          decimal.NewFromInt(20),
				SellingVATRate:         decimal.NewFromInt(20),
			},
			expected: "160.00",
		},
		"vat payable negative falls back to zero-vat case": {
			cost: decimal.NewFromInt(120),
			settings: models.SupplierSettings{
				BuyingPriceIncludesVAT: true,
				BuyingVATRate:          decimal.NewFromInt(20),
				SellingVATRate:         decimal.NewFromInt(1),
			},
			expected: "100.00",
		},
		"exclusive buying price vat still deducted": {
			cost: decimal.NewFromInt(100),
			settings: models.SupplierSettings{
				ProfitMargin:           decimal.NewFromInt(50),
				BuyingPriceIncludesVAT: false,
				BuyingVATRate:          decimal.NewFromInt(10),
				SellingVATRate:         decimal.NewFromInt(20),
			},
			expected: "180.00",
		},
		"exclusive buying price vat payable negative": {
			cost: decimal.NewFromInt(100),
			settings: models.SupplierSettings{
				BuyingPriceIncludesVAT: false,
				BuyingVATRate:          decimal.NewFromInt(20),
				SellingVATRate:         decimal.NewFromInt(20),
			},
			expected: "100.00",
		},
		"rule outside interval does not apply": {
			cost: decimal.NewFromInt(100),
			settings: models.SupplierSettings{
				ProfitMargin:   decimal.NewFromInt(10),
				SellingVATRate: decimal.NewFromInt(0),
			},
			rules: []models.PriceRule{
				rule(0, 100, models.RuleIncrease, models.OperationFixed, 999, 0),
			},
			expected: "110.00",
		},
	}

	engine := pricing.NewEngine()

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			price, err := engine.SellingPrice(tt.cost, tt.settings, tt.rules, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, price.StringFixed(2))
		})
	}
}

func TestSellingPriceDeterministic(t *testing.T) {
	t.Parallel()

	settings := models.SupplierSettings{
		ProfitMargin:           decimal.NewFromInt(35),
		ShippingCost:           decimal.NewFromInt(30),
		ServiceFee:             decimal.NewFromInt(5),
		WithholdingTaxRate:     decimal.NewFromInt(1),
		BuyingPriceIncludesVAT: true,
		BuyingVATRate:          decimal.NewFromInt(20),
		SellingVATRate:         decimal.NewFromInt(20),
		IncludeCommission:      true,
		DefaultCommissionRate:  decimal.NewFromInt(15),
	}

	engine := pricing.NewEngine()

	first, err := engine.SellingPrice(decimal.NewFromFloat(249.90), settings, nil, nil)
	require.NoError(t, err)

	second, err := engine.SellingPrice(decimal.NewFromFloat(249.90), settings, nil, nil)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestSellingPriceInvalidConfig(t *testing.T) {
	tests := map[string]struct {
		settings       models.SupplierSettings
		rules          []models.PriceRule
		commissionRate *decimal.Decimal
	}{
		"commission rate of 100% on rule path": {
			settings: models.SupplierSettings{
				IncludeCommission: true,
			},
			rules: []models.PriceRule{
				rule(0, 500, models.RuleIncrease, models.OperationFixed, 0, 0),
			},
			commissionRate: ptr(decimal.NewFromInt(100)),
		},
		"margin consumes entire denominator": {
			settings: models.SupplierSettings{
				ProfitMargin:   decimal.NewFromInt(500),
				SellingVATRate: decimal.NewFromInt(20),
			},
		},
	}

	engine := pricing.NewEngine()

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := engine.SellingPrice(decimal.NewFromInt(100), tt.settings, tt.rules, tt.commissionRate)

			assert.ErrorIs(t, err, pricing.ErrInvalidConfig)
		})
	}
}

func rule(
	minPrice, maxPrice int64,
	ruleType models.RuleType,
	opType models.OperationType,
	value, extra int64,
) models.PriceRule {
	return models.PriceRule{
		MinPrice:      decimal.NewFromInt(minPrice),
		MaxPrice:      decimal.NewFromInt(maxPrice),
		RuleType:      ruleType,
		OperationType: opType,
		Value:         decimal.NewFromInt(value),
		ExtraCost:     decimal.NewFromInt(extra),
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
