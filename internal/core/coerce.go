package core

import "math"

// Int converts an untyped value to int. Only Go integer kinds are accepted;
// bool, floats, strings, nil and containers are type mismatches.
func Int(op, arg string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, OutOfRange(op, arg, v)
		}
		return int(n), nil
	case uint:
		if n > math.MaxInt {
			return 0, OutOfRange(op, arg, v)
		}
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, OutOfRange(op, arg, v)
		}
		return int(n), nil
	}
	return 0, TypeMismatch(op, arg, v)
}

// Float converts an untyped number to float64. Integer kinds are widened; bool
// is not a number.
func Float(op, arg string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	}
	i, err := Int(op, arg, v)
	if err != nil {
		return 0, err
	}
	return float64(i), nil
}

// Bool accepts only a genuine bool.
func Bool(op, arg string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, TypeMismatch(op, arg, v)
	}
	return b, nil
}

// Positive reports whether x is a finite number greater than zero.
func Positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
