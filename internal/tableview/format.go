package tableview

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter converts a raw cell value into a display string. The full row is
// passed so a formatter may reference sibling fields.
type Formatter func(value any, row Row) string

// NotANumber is rendered by every built-in formatter for nil, non-numeric
// and non-finite input.
const NotANumber = "-"

// localePrinter pairs a locale-aware message printer with a fixed-precision
// verb. Creating printers is expensive, so they are cached per precision for
// the lifetime of the process and shared by all tables.
type localePrinter struct {
	printer *message.Printer
	verb    string
}

var (
	printerMu sync.Mutex
	printers  = map[int]*localePrinter{}
)

func printerFor(precision int) *localePrinter {
	printerMu.Lock()
	defer printerMu.Unlock()
	lp, ok := printers[precision]
	if !ok {
		lp = &localePrinter{
			printer: message.NewPrinter(language.AmericanEnglish),
			verb:    fmt.Sprintf("%%.%df", precision),
		}
		printers[precision] = lp
	}
	return lp
}

// localized renders v with thousands grouping at the given precision,
// e.g. localized(1234.5, 2) == "1,234.50".
func localized(v float64, precision int) string {
	lp := printerFor(precision)
	return lp.printer.Sprintf(lp.verb, v)
}

// toFloat converts a raw cell value to a finite float64. Strings are parsed,
// matching the loose numeric coercion the formatters promise. The second
// return value is false for nil, non-numeric and non-finite input.
func toFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case []byte:
		parsed, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CurrencyPrec returns a formatter rendering "$" plus a localized number at
// the given precision.
func CurrencyPrec(precision int) Formatter {
	return func(value any, _ Row) string {
		f, ok := toFloat(value)
		if !ok {
			return NotANumber
		}
		return "$" + localized(f, precision)
	}
}

// Currency formats a value as dollars with two fractional digits,
// e.g. 1234.5 -> "$1,234.50".
var Currency = CurrencyPrec(2)

// CPM formats a per-mille cost: the value is divided by 1000 before currency
// formatting.
func CPM(value any, row Row) string {
	f, ok := toFloat(value)
	if !ok {
		return NotANumber
	}
	return Currency(f/1000, row)
}

// PercentPrec returns a formatter multiplying by 100 and appending "%".
func PercentPrec(precision int) Formatter {
	return func(value any, _ Row) string {
		f, ok := toFloat(value)
		if !ok {
			return NotANumber
		}
		return localized(f*100, precision) + "%"
	}
}

// Percent formats a ratio as a percentage with two fractional digits.
var (
	Percent  = PercentPrec(2)
	Percent0 = PercentPrec(0)
	Percent1 = PercentPrec(1)
)

// FixedPrec returns a formatter rendering a localized number at the given
// precision.
func FixedPrec(precision int) Formatter {
	return func(value any, _ Row) string {
		f, ok := toFloat(value)
		if !ok {
			return NotANumber
		}
		return localized(f, precision)
	}
}

var (
	Fixed0 = FixedPrec(0)
	Fixed1 = FixedPrec(1)
	Fixed2 = FixedPrec(2)
)

// Thousands renders a count scaled down by 1000 with a "K" suffix,
// e.g. 12500 -> "12.5K".
func Thousands(value any, _ Row) string {
	f, ok := toFloat(value)
	if !ok {
		return NotANumber
	}
	return strconv.FormatFloat(f/1000, 'f', 1, 64) + "K"
}

// Calibration renders a calibration ratio with an "x" suffix,
// e.g. 1.034 -> "1.03x".
func Calibration(value any, _ Row) string {
	f, ok := toFloat(value)
	if !ok {
		return NotANumber
	}
	return strconv.FormatFloat(f, 'f', 2, 64) + "x"
}

// Truncate shortens s so the rendered length never exceeds maxLen. Strings
// that fit are returned unchanged; longer ones are cut at maxLen-1 runes and
// terminated with an ellipsis.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 1 {
		return ""
	}
	return string(runes[:maxLen-1]) + "…"
}

// TruncateTo returns a formatter that string-coerces the value and truncates
// it to maxLen.
func TruncateTo(maxLen int) Formatter {
	return func(value any, _ Row) string {
		return Truncate(coerceString(value), maxLen)
	}
}

// coerceString is the identity formatting used when no formatter is
// configured for a column.
func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", value)
	}
}
