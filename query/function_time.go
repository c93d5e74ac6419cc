package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order when a string is read as a timestamp
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// toTimestamp accepts a time.Time or a string in one of timestampLayouts
func toTimestamp(v interface{}) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse timestamp %q", val)
	default:
		return time.Time{}, fmt.Errorf("%w: cannot use %T as a timestamp", ErrTypeMismatch, v)
	}
}

// CastFunc converts a value to the type named by its second argument: int,
// float, string, bool or timestamp. The try form (TRY_CAST) yields nil
// instead of failing.
type CastFunc struct {
	try bool
}

func (f *CastFunc) Name() string {
	if f.try {
		return "TRY_CAST"
	}
	return "CAST"
}
func (f *CastFunc) MinArity() int { return 2 }
func (f *CastFunc) MaxArity() int { return 2 }
func (f *CastFunc) Evaluate(args []interface{}) (interface{}, error) {
	target, ok := args[1].(string)
	if !ok {
		return nil, fmt.Errorf("%s: type name must be a string, got %T", f.Name(), args[1])
	}
	conv, ok := casts[strings.ToLower(target)]
	if !ok {
		return nil, fmt.Errorf("%s: unknown type %q", f.Name(), target)
	}
	v, err := conv(args[0])
	if err != nil {
		if f.try {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return v, nil
}

var casts = map[string]func(interface{}) (interface{}, error){
	"int": func(v interface{}) (interface{}, error) {
		switch val := v.(type) {
		case int64:
			return val, nil
		case float64:
			return int64(val), nil
		case bool:
			if val {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			return strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		}
		return nil, fmt.Errorf("cannot convert %T to int", v)
	},
	"float": func(v interface{}) (interface{}, error) {
		return valueToNumber(v)
	},
	"string": func(v interface{}) (interface{}, error) {
		return valueToString(v)
	},
	"bool": func(v interface{}) (interface{}, error) {
		switch val := v.(type) {
		case bool:
			return val, nil
		case int64:
			return val != 0, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(val))
		}
		return nil, fmt.Errorf("cannot convert %T to bool", v)
	},
	"timestamp": func(v interface{}) (interface{}, error) {
		return toTimestamp(v)
	},
}

// ToTimestampFunc parses its argument as a timestamp
type ToTimestampFunc struct{}

func (f *ToTimestampFunc) Name() string  { return "TO_TIMESTAMP" }
func (f *ToTimestampFunc) MinArity() int { return 1 }
func (f *ToTimestampFunc) MaxArity() int { return 1 }
func (f *ToTimestampFunc) Evaluate(args []interface{}) (interface{}, error) {
	t, err := toTimestamp(args[0])
	if err != nil {
		return nil, fmt.Errorf("TO_TIMESTAMP: %w", err)
	}
	return t, nil
}

var dateParts = map[string]func(time.Time) int{
	"year":   time.Time.Year,
	"month":  func(t time.Time) int { return int(t.Month()) },
	"day":    time.Time.Day,
	"hour":   time.Time.Hour,
	"minute": time.Time.Minute,
	"second": time.Time.Second,
}

// DatePartFunc extracts one component of a timestamp: DATE_PART('month', ts)
type DatePartFunc struct{}

func (f *DatePartFunc) Name() string  { return "DATE_PART" }
func (f *DatePartFunc) MinArity() int { return 2 }
func (f *DatePartFunc) MaxArity() int { return 2 }
func (f *DatePartFunc) Evaluate(args []interface{}) (interface{}, error) {
	unit, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("DATE_PART: unit must be a string, got %T", args[0])
	}
	return datePart(f.Name(), strings.ToLower(unit), args[1])
}

func datePart(fn, unit string, v interface{}) (interface{}, error) {
	part, ok := dateParts[unit]
	if !ok {
		return nil, fmt.Errorf("%s: invalid unit %q", fn, unit)
	}
	t, err := toTimestamp(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return int64(part(t)), nil
}

// datePartAlias is DATE_PART with a fixed unit, registered as YEAR, MONTH,
// DAY and HOUR
type datePartAlias struct {
	part string
}

func (f *datePartAlias) Name() string  { return strings.ToUpper(f.part) }
func (f *datePartAlias) MinArity() int { return 1 }
func (f *datePartAlias) MaxArity() int { return 1 }
func (f *datePartAlias) Evaluate(args []interface{}) (interface{}, error) {
	return datePart(f.Name(), f.part, args[0])
}

// DateTruncFunc rounds a timestamp down to the start of a unit:
// DATE_TRUNC('month', ts)
type DateTruncFunc struct{}

func (f *DateTruncFunc) Name() string  { return "DATE_TRUNC" }
func (f *DateTruncFunc) MinArity() int { return 2 }
func (f *DateTruncFunc) MaxArity() int { return 2 }
func (f *DateTruncFunc) Evaluate(args []interface{}) (interface{}, error) {
	unit, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("DATE_TRUNC: unit must be a string, got %T", args[0])
	}
	t, err := toTimestamp(args[1])
	if err != nil {
		return nil, fmt.Errorf("DATE_TRUNC: %w", err)
	}

	y, mo, d := t.Date()
	switch strings.ToLower(unit) {
	case "year":
		mo, d = time.January, 1
	case "month":
		d = 1
	case "day":
	case "hour":
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, t.Location()), nil
	default:
		return nil, fmt.Errorf("DATE_TRUNC: invalid unit %q", unit)
	}
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location()), nil
}
