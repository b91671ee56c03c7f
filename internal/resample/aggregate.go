package resample

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/taifexpulse/internal/domain/models"
)

// Label selects which bucket boundary becomes the bar's Date.
type Label string

const (
	LabelLeft  Label = "left"  // bucket start
	LabelRight Label = "right" // bucket start + freq
)

// ParseLabel validates a label-edge config string.
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case LabelLeft, LabelRight:
		return Label(s), nil
	default:
		return "", fmt.Errorf("unknown label edge %q (want left or right)", s)
	}
}

// ParseFreq converts a resample frequency string into a bucket width.
// Accepted forms: "D" (calendar day), "<n>T" or "<n>min" (minutes),
// "<n>H" (hours), "<n>S" (seconds). A bare suffix means n=1, e.g. "T".
func ParseFreq(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty resample frequency")
	}

	unit := time.Duration(0)
	num := ""
	switch {
	case strings.HasSuffix(s, "min"):
		unit, num = time.Minute, strings.TrimSuffix(s, "min")
	case strings.HasSuffix(s, "T"):
		unit, num = time.Minute, strings.TrimSuffix(s, "T")
	case strings.HasSuffix(s, "H"):
		unit, num = time.Hour, strings.TrimSuffix(s, "H")
	case strings.HasSuffix(s, "S"):
		unit, num = time.Second, strings.TrimSuffix(s, "S")
	case strings.HasSuffix(s, "D"):
		unit, num = 24*time.Hour, strings.TrimSuffix(s, "D")
	default:
		return 0, fmt.Errorf("unsupported resample frequency %q", s)
	}

	n := 1
	if num != "" {
		v, err := strconv.Atoi(num)
		if err != nil || v < 1 {
			return 0, fmt.Errorf("invalid resample frequency %q", s)
		}
		n = v
	}
	return time.Duration(n) * unit, nil
}

// bucketStart floors a timestamp onto its bucket boundary. Buckets are
// half-open, left-closed intervals laid out from the Unix epoch:
// idx = floor((t - epoch) / freq).
func bucketStart(ts time.Time, freq time.Duration) time.Time {
	fs := int64(freq / time.Second)
	sec := ts.Unix()
	idx := sec / fs
	if sec < 0 && sec%fs != 0 {
		idx--
	}
	return time.Unix(idx*fs, 0).UTC()
}

// Resample groups session-filtered ticks by their class key and reduces each
// (group, bucket) pair to one OHLCV bar.
//
// Semantics:
//   - open/close are the first/last price in the bucket in timestamp order
//     (ties keep input order, which FilterSession made stable).
//   - high/low are the max/min price.
//   - volume is the summed tick volume halved: each trade appears once per
//     leg in the source, so the raw sum double-counts.
//   - empty buckets are omitted, never zero-filled; zero input ticks produce
//     an empty result, not an error.
//
// Output rows are sorted by (date, item_code, contract_mon, strike_price,
// cp_flag) ascending.
func Resample(ticks []models.Tick, class models.InstrumentClass, freq time.Duration, label Label) []models.Bar {
	if len(ticks) == 0 {
		return nil
	}

	type slot struct {
		key  models.GroupKey
		date time.Time
	}
	bars := make(map[slot]*models.Bar)
	var slots []slot

	for _, tk := range ticks {
		date := bucketStart(tk.Timestamp, freq)
		if label == LabelRight {
			date = date.Add(freq)
		}
		s := slot{key: tk.Key(class), date: date}

		b, ok := bars[s]
		if !ok {
			b = &models.Bar{
				Date:        date,
				ItemCode:    s.key.ItemCode,
				ContractMon: s.key.ContractMon,
				StrikePrice: s.key.StrikePrice,
				CPFlag:      s.key.CPFlag,
				Open:        tk.Price,
				High:        tk.Price,
				Low:         tk.Price,
			}
			bars[s] = b
			slots = append(slots, s)
		}
		if tk.Price > b.High {
			b.High = tk.Price
		}
		if tk.Price < b.Low {
			b.Low = tk.Price
		}
		b.Close = tk.Price
		b.Volume += float64(tk.Volume)
	}

	out := make([]models.Bar, 0, len(slots))
	for _, s := range slots {
		b := *bars[s]
		b.Volume /= 2
		out = append(out, b)
	}
	SortBars(out)
	return out
}

// SortBars orders bars by (date, item_code, contract_mon, strike_price,
// cp_flag) ascending, the deterministic order the orchestrator re-applies
// after each file.
func SortBars(bars []models.Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		a, b := bars[i], bars[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.ItemCode != b.ItemCode {
			return a.ItemCode < b.ItemCode
		}
		if a.ContractMon != b.ContractMon {
			return a.ContractMon < b.ContractMon
		}
		if a.StrikePrice != b.StrikePrice {
			return a.StrikePrice < b.StrikePrice
		}
		return a.CPFlag < b.CPFlag
	})
}
