package models

import "errors"

// ErrInvalidInstrumentClass is returned whenever a caller supplies an
// instrument class other than FUTURE or OPTION. It is a configuration
// error: the whole run aborts, no retry.
var ErrInvalidInstrumentClass = errors.New("instrument class must be FUTURE or OPTION")

// InstrumentClass selects which TAIFEX file layout and grouping rules apply.
type InstrumentClass string

const (
	ClassFuture InstrumentClass = "FUTURE"
	ClassOption InstrumentClass = "OPTION"
)

// ParseInstrumentClass validates and normalizes a class string.
//
// Returns:
//   - InstrumentClass: ClassFuture or ClassOption.
//   - error: ErrInvalidInstrumentClass for anything else.
func ParseInstrumentClass(s string) (InstrumentClass, error) {
	switch InstrumentClass(s) {
	case ClassFuture, ClassOption:
		return InstrumentClass(s), nil
	default:
		return "", ErrInvalidInstrumentClass
	}
}

// ItemCodes returns the closed allow-list of instrument symbols for the
// class. Ticks carrying any other item_code are discarded by the session
// filter.
func (c InstrumentClass) ItemCodes() []string {
	switch c {
	case ClassFuture:
		return []string{"TX", "MTX", "TE", "TF", "XIF"}
	case ClassOption:
		return []string{"TXO", "TEO", "TFO", "XIO"}
	default:
		return nil
	}
}

// GroupBy returns the column names that form the aggregation key:
// (item_code, contract_mon) for futures, plus (strike_price, cp_flag)
// for options.
func (c InstrumentClass) GroupBy() []string {
	switch c {
	case ClassFuture:
		return []string{"item_code", "contract_mon"}
	case ClassOption:
		return []string{"item_code", "contract_mon", "strike_price", "cp_flag"}
	default:
		return nil
	}
}

// SkipRows is the number of leading non-data rows in a source file:
// the header line for futures, header plus one metadata line for options.
func (c InstrumentClass) SkipRows() int {
	if c == ClassOption {
		return 2
	}
	return 1
}
