// Package ingestion drives the tick-file batch: it reads zipped Big5 tick
// archives, feeds them through the resample core, and accumulates the
// per-file bars into the final nearby series.
package ingestion

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/guttosm/taifexpulse/internal/domain/models"
	"github.com/guttosm/taifexpulse/internal/resample"
)

// readArchive opens a .zip tick archive, decodes its first file entry from
// Big5, and parses it as a comma-delimited table. All rows are returned,
// header and metadata lines included; the caller applies skiprows.
//
// Rows are allowed to have varying field counts: the header probe needs the
// raw width of the first line, and short trailing rows are handled by the
// sentinel stripper and malformed-row policy downstream.
func readArchive(path string) ([][]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = zr.Close() }()

	var entry *zip.File
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("archive %s has no file entry", path)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", entry.Name, err)
	}
	defer func() { _ = rc.Close() }()

	// The exchange publishes these tables in Big5, not UTF-8.
	decoded := transform.NewReader(rc, traditionalchinese.Big5.NewDecoder())

	r := csv.NewReader(decoded)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read entry %s: %w", entry.Name, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// columnIndex locates each canonical column the pipeline consumes inside the
// normalized name list.
type columnIndex struct {
	txdDt, txdTm, itemCode, contractMon, price, volume int
	strikePrice, cpFlag                                int // -1 for futures
}

func newColumnIndex(cols []string) columnIndex {
	find := func(name string) int {
		for i, c := range cols {
			if c == name {
				return i
			}
		}
		return -1
	}
	return columnIndex{
		txdDt:       find("txd_dt"),
		txdTm:       find("txd_tm"),
		itemCode:    find("item_code"),
		contractMon: find("contract_mon"),
		price:       find("price"),
		volume:      find("volume"),
		strikePrice: find("strike_price"),
		cpFlag:      find("cp_flag"),
	}
}

// recordToTick converts one raw data row into a canonical tick. It is
// tolerant of trailing ragged columns (the optional open_flag) but treats a
// row too short to carry the required fields, or one whose timestamp or
// numerics do not parse, as malformed.
func recordToTick(rec []string, idx columnIndex) (models.Tick, error) {
	var t models.Tick

	need := []int{idx.txdDt, idx.txdTm, idx.itemCode, idx.contractMon, idx.price, idx.volume}
	for _, i := range need {
		if i < 0 || i >= len(rec) {
			return t, fmt.Errorf("row has %d fields, required column missing", len(rec))
		}
	}

	ts, err := resample.ParseTimestamp(strings.TrimSpace(rec[idx.txdDt]), strings.TrimSpace(rec[idx.txdTm]))
	if err != nil {
		return t, err
	}
	t.Timestamp = ts
	t.ItemCode = strings.TrimSpace(rec[idx.itemCode])
	t.ContractMon = strings.TrimSpace(rec[idx.contractMon])

	price, err := strconv.ParseFloat(strings.TrimSpace(rec[idx.price]), 64)
	if err != nil {
		return t, fmt.Errorf("invalid price: %w", err)
	}
	t.Price = price

	vol, err := strconv.ParseInt(strings.TrimSpace(rec[idx.volume]), 10, 64)
	if err != nil {
		return t, fmt.Errorf("invalid volume: %w", err)
	}
	t.Volume = vol

	if idx.strikePrice >= 0 && idx.strikePrice < len(rec) {
		t.StrikePrice = strings.TrimSpace(rec[idx.strikePrice])
	}
	if idx.cpFlag >= 0 && idx.cpFlag < len(rec) {
		t.CPFlag = strings.TrimSpace(rec[idx.cpFlag])
	}
	return t, nil
}
