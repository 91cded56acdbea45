package bank

import (
	"fmt"
	"regexp"
	"strconv"
)

var accountNoPattern = regexp.MustCompile(`^\d+$`)

// AccountNo identifies an Account towards the outside world. It equals the
// account's persistent identity and is only valid once that is assigned.
type AccountNo struct {
	number int64
}

// InvalidAccountNoError reports a missing or malformed account number input.
type InvalidAccountNoError struct {
	Input string
}

func (e InvalidAccountNoError) Error() string {
	return fmt.Sprintf("illegal account number %q: must consist only of digits", e.Input)
}

// NewAccountNo wraps a non-negative numeric account identifier.
func NewAccountNo(number int64) (AccountNo, error) {
	if number < 0 {
		return AccountNo{}, InvalidAccountNoError{Input: strconv.FormatInt(number, 10)}
	}
	return AccountNo{number: number}, nil
}

// ParseAccountNo builds an AccountNo from its decimal string form.
func ParseAccountNo(s string) (AccountNo, error) {
	if !accountNoPattern.MatchString(s) {
		return AccountNo{}, InvalidAccountNoError{Input: s}
	}
	number, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return AccountNo{}, InvalidAccountNoError{Input: s}
	}
	return AccountNo{number: number}, nil
}

// Int64 returns the wrapped number.
func (no AccountNo) Int64() int64 { return no.number }

func (no AccountNo) String() string { return strconv.FormatInt(no.number, 10) }
