// Package codec converts between raw feed text, stored column values and
// display strings for every semantic type.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sortiment/internal/model"
)

var (
	ErrMalformedValue = errors.New("malformed value")
	ErrMissingOperand = errors.New("missing operand")
	ErrZeroPrice      = errors.New("zero price")
)

// Parse decodes raw feed text. Category values are resolved against labels,
// which must already contain raw when raw is non-empty.
func Parse(raw string, t model.SemanticType, labels *model.LabelSet) (any, error) {
	switch t {
	case model.Integer:
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: integer %q", ErrMalformedValue, raw)
		}
		return v, nil
	case model.Price, model.PricePerLiter, model.Volume, model.AlcoholRatio:
		if raw == "" {
			return nil, nil
		}
		return parseDecimal(raw)
	case model.Percentage:
		if raw == "" {
			return nil, nil
		}
		return parsePercentage(raw)
	case model.Boolean:
		switch raw {
		case "":
			return nil, nil
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
		return nil, fmt.Errorf("%w: boolean %q", ErrMalformedValue, raw)
	case model.Category:
		if raw == "" || labels == nil {
			return int64(0), nil
		}
		return labels.Index(raw), nil
	case model.Text, model.Date:
		// An empty element carries no text at all.
		if raw == "" {
			return nil, nil
		}
		return raw, nil
	case model.URL:
		return nil, fmt.Errorf("%w: url attributes are computed, not parsed", ErrMalformedValue)
	}
	return nil, fmt.Errorf("%w: unsupported type %s", ErrMalformedValue, t)
}

// parseDecimal turns "123.45" into 12345. Exactly two fractional digits.
func parseDecimal(raw string) (int64, error) {
	if len(raw) < 4 || raw[len(raw)-3] != '.' {
		return 0, fmt.Errorf("%w: decimal %q", ErrMalformedValue, raw)
	}
	v, err := strconv.ParseInt(raw[:len(raw)-3]+raw[len(raw)-2:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: decimal %q", ErrMalformedValue, raw)
	}
	return v, nil
}

// parsePercentage turns "12.34%" into 1234. One fractional digit is
// accepted and padded ("40.0%" is 4000).
func parsePercentage(raw string) (int64, error) {
	body, ok := strings.CutSuffix(raw, "%")
	if !ok {
		return 0, fmt.Errorf("%w: percentage %q", ErrMalformedValue, raw)
	}
	whole, frac, ok := strings.Cut(body, ".")
	if !ok || whole == "" || len(frac) < 1 || len(frac) > 2 {
		return 0, fmt.Errorf("%w: percentage %q", ErrMalformedValue, raw)
	}
	if len(frac) == 1 {
		frac += "0"
	}
	if !isDigits(frac) {
		return 0, fmt.Errorf("%w: percentage %q", ErrMalformedValue, raw)
	}
	v, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: percentage %q", ErrMalformedValue, raw)
	}
	return v, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// Storage converts a parsed value to its column value.
func Storage(a model.Attribute, v any) any {
	if v == nil {
		if a.Type == model.Category {
			return int64(0)
		}
		return nil
	}
	if b, ok := v.(bool); ok {
		if b {
			return int64(1)
		}
		return int64(0)
	}
	return v
}

// AlcoholPerKrona is millilitres of pure alcohol per krona, scaled by 100.
// volume, price and alcoholPercent are all fixed-point values scaled by 100.
// The result is rounded half to even.
func AlcoholPerKrona(volume, price, alcoholPercent int64) (int64, error) {
	if price == 0 {
		return 0, ErrZeroPrice
	}
	// (volume * pct/10000) / price, scaled by 100
	num := volume * alcoholPercent
	den := price * 100
	return roundHalfEven(num, den), nil
}

func roundHalfEven(num, den int64) int64 {
	if den < 0 {
		num, den = -num, -den
	}
	q, r := num/den, num%den
	if r < 0 {
		q--
		r += den
	}
	switch twice := 2 * r; {
	case twice > den:
		q++
	case twice == den && q%2 != 0:
		q++
	}
	return q
}

// DeriveAlcoholPerKrona reads the operands from item.
func DeriveAlcoholPerKrona(item model.Item) (int64, error) {
	volume, ok := item.Int(model.AttrVolume)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingOperand, model.AttrVolume)
	}
	price, ok := item.Int(model.AttrPrice)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingOperand, model.AttrPrice)
	}
	pct, ok := item.Int(model.AttrAlcohol)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingOperand, model.AttrAlcohol)
	}
	return AlcoholPerKrona(volume, price, pct)
}
