package accounting

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var maxLocationID = decimal.NewFromInt(math.MaxInt64)

// NormalizeLocationID converts a loosely typed location reference into a
// positive integer id. Zero, negative, fractional and non-numeric values are
// treated as absent, as are values that do not fit in an int64.
func NormalizeLocationID(v any) *int64 {
	switch t := v.(type) {
	case nil, bool:
		return nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil || !d.IsInteger() || !d.IsPositive() || d.GreaterThan(maxLocationID) {
			return nil
		}
		id := d.IntPart()
		return &id
	case json.Number:
		return NormalizeLocationID(string(t))
	case *string:
		if t == nil {
			return nil
		}
		return NormalizeLocationID(*t)
	case float32, float64:
		f := cast.ToFloat64(t)
		if f >= math.MaxInt64 || f != float64(int64(f)) {
			return nil
		}
	case *int64:
		if t == nil {
			return nil
		}
	case *int:
		if t == nil {
			return nil
		}
	}

	id, err := cast.ToInt64E(v)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// ResolveLocationForStockIssue returns the first present location in priority
// order invoice, item default, company default, or nil when all are absent.
func ResolveLocationForStockIssue(invoiceLocationID, itemDefaultLocationID, companyDefaultLocationID any) *int64 {
	for _, candidate := range []any{invoiceLocationID, itemDefaultLocationID, companyDefaultLocationID} {
		if id := NormalizeLocationID(candidate); id != nil {
			return id
		}
	}
	return nil
}
