package storage

import (
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/taifexpulse/internal/domain/models"
)

// BarsRepository defines contract for DB operations.
type BarsRepository interface {
	InsertBarsBatch(sourceFile string, bars []models.Bar) error
	GetBarsByItem(itemCode string, startDate *time.Time, endDate *time.Time) ([]models.Bar, error)
	HasIngestionForFile(filename string) (bool, error)
	UpsertIngestionLog(filename string, barCount int) error
	DeleteBarsBySourceFile(filename string) error
}

type barsRepository struct {
	db *sql.DB
}

func NewBarsRepository(db *sql.DB) BarsRepository {
	return &barsRepository{db: db}
}

// InsertBarsBatch bulk-loads one archive's bars in a single transaction.
func (r *barsRepository) InsertBarsBatch(sourceFile string, bars []models.Bar) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"bars",
		"bar_date",
		"item_code",
		"contract_mon",
		"strike_price",
		"cp_flag",
		"open",
		"high",
		"low",
		"close",
		"volume",
		"source_file",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	// options-only fields map to NULL for futures rows
	toNullStr := func(s string) interface{} {
		if s == "" {
			return nil
		}
		return s
	}

	for _, b := range bars {
		if _, err := stmt.Exec(
			b.Date,
			b.ItemCode,
			b.ContractMon,
			toNullStr(b.StrikePrice),
			toNullStr(b.CPFlag),
			b.Open,
			b.High,
			b.Low,
			b.Close,
			b.Volume,
			sourceFile,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasIngestionForFile checks if an archive was already resampled.
func (r *barsRepository) HasIngestionForFile(filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE source_file = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for an archive.
func (r *barsRepository) UpsertIngestionLog(filename string, barCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (source_file, bar_count)
		VALUES ($1, $2)
		ON CONFLICT (source_file)
		DO UPDATE SET bar_count = EXCLUDED.bar_count,
					  ingested_at = NOW()
	`, filename, barCount)
	return err
}

// DeleteBarsBySourceFile removes all bars produced from a given archive.
func (r *barsRepository) DeleteBarsBySourceFile(filename string) error {
	_, err := r.db.Exec(`DELETE FROM bars WHERE source_file = $1`, filename)
	return err
}

// GetBarsByItem returns the accumulated bars for one item code, all contract
// months included, ordered by (bar_date, contract_mon, strike_price, cp_flag).
// Nearby selection over the result is the service layer's job.
func (r *barsRepository) GetBarsByItem(itemCode string, startDate *time.Time, endDate *time.Time) ([]models.Bar, error) {
	// Build dynamic conditions for date range filters.
	// $1 is always the item code. Subsequent placeholders depend on provided dates.
	conditions := "item_code = $1"
	var args []interface{}
	args = append(args, itemCode)
	if startDate != nil {
		placeholder := len(args) + 1 // next positional param index
		conditions += fmt.Sprintf(" AND bar_date >= $%d", placeholder)
		args = append(args, *startDate)
	}
	if endDate != nil {
		placeholder := len(args) + 1
		conditions += fmt.Sprintf(" AND bar_date <= $%d", placeholder)
		args = append(args, *endDate)
	}

	query := fmt.Sprintf(`
		SELECT bar_date, item_code, contract_mon, strike_price, cp_flag,
		       open, high, low, close, volume
		FROM bars
		WHERE %s
		ORDER BY bar_date, contract_mon, strike_price, cp_flag
	`, conditions)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var bars []models.Bar
	for rows.Next() {
		var b models.Bar
		var strike, cp sql.NullString
		if err := rows.Scan(&b.Date, &b.ItemCode, &b.ContractMon, &strike, &cp,
			&b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		b.StrikePrice = strike.String
		b.CPFlag = cp.String
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}
