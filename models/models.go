package models

import "github.com/shopspring/decimal"

func init() {
	// monetary fields cross the wire as plain numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}
