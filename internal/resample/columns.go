// Package resample implements the tick-to-bar pipeline core: schema
// normalization of raw TAIFEX rows, session-window filtering, fixed-interval
// OHLCV aggregation, and nearby-contract selection.
package resample

import (
	"github.com/guttosm/taifexpulse/internal/domain/models"
)

// futureColumns and optionColumns are the canonical layouts of the raw
// files. Some archives carry one extra trailing marker column (open_flag);
// that is detected from the actual header width, never assumed.
var (
	futureColumns = []string{
		"txd_dt", "item_code", "contract_mon",
		"txd_tm", "price", "volume",
		"nearby_price", "back_price",
	}
	optionColumns = []string{
		"txd_dt", "item_code", "strike_price",
		"contract_mon", "cp_flag", "txd_tm",
		"price", "volume",
	}
)

// ColumnNames returns the ordered column-name list to apply to a whole file,
// given the column count observed in its header row.
//
// Parameters:
//   - class:      FUTURE or OPTION; anything else fails with
//     models.ErrInvalidInstrumentClass.
//   - headerCols: number of columns in the one-row header probe. 9 means the
//     file carries the optional trailing open_flag column.
//
// The mapping is pure; it never inspects file contents beyond the count.
func ColumnNames(class models.InstrumentClass, headerCols int) ([]string, error) {
	var columns []string
	switch class {
	case models.ClassFuture:
		columns = futureColumns
	case models.ClassOption:
		columns = optionColumns
	default:
		return nil, models.ErrInvalidInstrumentClass
	}

	out := append([]string(nil), columns...)
	if headerCols == 9 {
		out = append(out, "open_flag")
	}
	return out, nil
}
