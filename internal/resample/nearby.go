package resample

import (
	"sort"
	"time"

	"github.com/guttosm/taifexpulse/internal/domain/models"
)

// FilterNearby restricts an accumulated bar table to one underlying item
// code and, per distinct date, to the contract-month closest to expiry.
//
// "Closest to expiry" is the minimum contract_mon among contracts active on
// that date: the zero-padded YYYYMM codes sort chronologically, so the
// string minimum is the front month. Rows for every other contract are
// dropped and the survivors are projected to the per-date OHLCV series.
// No price adjustment happens across rolls.
//
// The operation is idempotent: its output already equals the per-date
// minimum everywhere, so reapplying selection changes nothing.
func FilterNearby(bars []models.Bar, itemCode string) []models.NearbyBar {
	nearby := make(map[time.Time]string)
	for _, b := range bars {
		if b.ItemCode != itemCode {
			continue
		}
		if mon, ok := nearby[b.Date]; !ok || b.ContractMon < mon {
			nearby[b.Date] = b.ContractMon
		}
	}

	out := make([]models.NearbyBar, 0, len(nearby))
	for _, b := range bars {
		if b.ItemCode != itemCode || b.ContractMon != nearby[b.Date] {
			continue
		}
		out = append(out, models.NearbyBar{
			Date:   b.Date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
