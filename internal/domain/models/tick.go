package models

import "time"

// Tick is one normalized trade print from a TAIFEX tick file.
//
// The raw files carry dates and times as separate digit strings
// (txd_dt "YYYYMMDD", txd_tm "HHMMSS..."); the reader composes them into
// Timestamp at second resolution. StrikePrice and CPFlag are populated for
// options only and stay empty for futures.
type Tick struct {
	Timestamp   time.Time
	ItemCode    string // instrument symbol, e.g. "TX"
	ContractMon string // contract-month code, e.g. "202403"
	Price       float64
	Volume      int64
	StrikePrice string // options only
	CPFlag      string // options only: "C" or "P"
}

// GroupKey identifies one aggregation group. For futures only ItemCode and
// ContractMon are set; options additionally carry StrikePrice and CPFlag.
// The zero-valued trailing fields keep a single comparable key type for
// both classes.
type GroupKey struct {
	ItemCode    string
	ContractMon string
	StrikePrice string
	CPFlag      string
}

// Key builds the aggregation key for the tick under the given class.
func (t Tick) Key(class InstrumentClass) GroupKey {
	k := GroupKey{ItemCode: t.ItemCode, ContractMon: t.ContractMon}
	if class == ClassOption {
		k.StrikePrice = t.StrikePrice
		k.CPFlag = t.CPFlag
	}
	return k
}
