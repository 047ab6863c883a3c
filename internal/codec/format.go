package codec

import (
	"fmt"
	"strconv"

	"sortiment/internal/model"
)

// FormatFixedPoint renders v/100 with a decimal comma and two fraction
// digits: 5 is "0,05", 1234 is "12,34".
func FormatFixedPoint(v int64) string {
	if v < 0 {
		return "-" + FormatFixedPoint(-v)
	}
	if v < 100 {
		return fmt.Sprintf("0,%02d", v)
	}
	s := strconv.FormatInt(v, 10)
	return s[:len(s)-2] + "," + s[len(s)-2:]
}

// Format renders a stored value for display. Values of types without a
// display rule are returned unchanged.
func Format(v any, t model.SemanticType) any {
	switch t {
	case model.Boolean:
		if truthy(v) {
			return "Ja"
		}
		return "Nej"
	case model.Price:
		n, ok := asInt(v)
		if !ok || n == 0 {
			return ""
		}
		return FormatFixedPoint(n) + " kr"
	case model.Percentage:
		return withUnit(v, " %")
	case model.PricePerLiter:
		return withUnit(v, " kr/l")
	case model.AlcoholRatio:
		return withUnit(v, " ml/kr")
	case model.Volume:
		return withUnit(v, " ml")
	case model.Integer, model.Text, model.Category, model.Date, model.URL:
		return v
	}
	return v
}

func withUnit(v any, unit string) any {
	n, ok := asInt(v)
	if !ok {
		return nil
	}
	return FormatFixedPoint(n) + unit
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	}
	return 0, false
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case nil:
		return false
	}
	n, ok := asInt(v)
	return ok && n != 0
}
