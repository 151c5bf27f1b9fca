package fieldmap

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var missingMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"-":    {},
}

// ToDecimal coerces an upstream value into a fixed-point decimal. Missing
// markers and unparseable input return nil (unset), never zero.
func ToDecimal(v any) *decimal.Decimal {
	var (
		d   decimal.Decimal
		err error
	)

	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(t)
		if _, missing := missingMarkers[strings.ToLower(s)]; missing {
			return nil
		}
		d, err = decimal.NewFromString(s)
	case json.Number:
		d, err = decimal.NewFromString(t.String())
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		d = decimal.NewFromFloat(t)
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil
		}
		d = decimal.NewFromFloat32(t)
	case int:
		d = decimal.NewFromInt(int64(t))
	case int32:
		d = decimal.NewFromInt32(t)
	case int64:
		d = decimal.NewFromInt(t)
	case decimal.Decimal:
		d = t
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &d
}
