package attribute

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"

	"github.com/truora/dynamite/types"
)

var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber validates s as decimal text and returns it as a Number.
func ParseNumber(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return "", types.NewProtocolError("", "invalid number %q", s)
	}

	return Number(s), nil
}

// NumberFromInt formats an integer as a Number.
func NumberFromInt(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// NumberFromUint formats an unsigned integer as a Number.
func NumberFromUint(u uint64) Number {
	return Number(strconv.FormatUint(u, 10))
}

// NumberFromFloat formats a float with the fewest digits that round-trip.
// NaN and infinities have no decimal form.
func NumberFromFloat(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", types.NewProtocolError("", "number %v has no decimal form", f)
	}

	return Number(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// String returns the decimal text.
func (n Number) String() string {
	return string(n)
}

// Int64 parses the number as an integer.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// Float64 parses the number as a float, possibly losing precision.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// JSON returns the number as a json.Number so encoders emit it verbatim.
func (n Number) JSON() json.Number {
	return json.Number(n)
}
