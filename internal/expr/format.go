package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v the way the display shows it: integral values
// without a fractional part, everything else as the shortest decimal that
// round-trips.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if v == math.Trunc(v) && abs < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	if abs < 1e-6 || abs >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseFloat reads a display buffer as a single finite number.
func ParseFloat(s string) (float64, error) {
	t := strings.TrimSpace(s)
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return v, nil
}

// ParseInt reads a display buffer as a base-10 integer. "3.5" and "5.0"
// are both rejected.
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrNotNumeric, s)
	}
	return v, nil
}
