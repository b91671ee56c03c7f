package models

import "time"

// Bar is one aggregated OHLCV record for a (bucket, group key) pair.
//
// Date is the bucket boundary chosen by the label edge (left = bucket start,
// right = bucket end). Volume is the summed tick volume divided by two: the
// source files count both the buy and the sell leg of every trade, so the
// halved sum is the true traded volume. Odd raw sums therefore produce a
// fractional bar volume, which is kept as-is.
type Bar struct {
	Date        time.Time
	ItemCode    string
	ContractMon string
	StrikePrice string // options only
	CPFlag      string // options only
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
}

// Key returns the bar's aggregation key.
func (b Bar) Key() GroupKey {
	return GroupKey{
		ItemCode:    b.ItemCode,
		ContractMon: b.ContractMon,
		StrikePrice: b.StrikePrice,
		CPFlag:      b.CPFlag,
	}
}

// NearbyBar is a Bar after nearby-contract selection, projected to the
// per-date OHLCV series consumed downstream. The contract identity is
// intentionally dropped: per date, exactly the front-month rows survive.
type NearbyBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
