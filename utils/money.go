package utils

import (
	"github.com/shopspring/decimal"
)

// Monetary values are stored as high-precision numerics and handled in memory
// as decimal.Decimal. Whenever an amount crosses a JSON-style boundary it is
// normalized to a float rounded to the currency minor unit (two places for
// INR), and parsed back into a decimal on the way in. Ids, dates, strings and
// booleans pass through untouched.

const minorUnitPlaces = 2

// NormalizeAmount rounds a decimal to the minor unit and returns a float safe
// for transport.
func NormalizeAmount(d decimal.Decimal) float64 {
	f, _ := d.Round(minorUnitPlaces).Float64()
	return f
}

// DenormalizeAmount converts a transported numeric back into the canonical
// decimal representation.
func DenormalizeAmount(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(minorUnitPlaces)
}

// Normalize walks an arbitrarily nested document of maps and slices and
// converts every decimal value it finds into a transport-safe float. All
// other values are returned as-is.
func Normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case decimal.Decimal:
		return NormalizeAmount(val)
	case *decimal.Decimal:
		if val == nil {
			return nil
		}
		return NormalizeAmount(*val)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}

// Denormalize is the inverse walk: every float in the document is parsed back
// into a minor-unit decimal. Use it only on documents whose numeric fields
// are monetary, which is the case for everything this backend serializes
// through Normalize.
func Denormalize(v interface{}) interface{} {
	switch val := v.(type) {
	case float64:
		return DenormalizeAmount(val)
	case float32:
		return DenormalizeAmount(float64(val))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Denormalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Denormalize(item)
		}
		return out
	default:
		return v
	}
}

// DiscountedPrice derives the payable price from the base price and a
// percentage discount: price x (1 - discount/100), rounded to the minor unit.
func DiscountedPrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	if discountPercent.IsZero() {
		return price.Round(minorUnitPlaces)
	}
	hundred := decimal.NewFromInt(100)
	factor := hundred.Sub(discountPercent).Div(hundred)
	return price.Mul(factor).Round(minorUnitPlaces)
}
