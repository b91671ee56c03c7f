package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/taifexpulse/internal/domain/models"
	"github.com/guttosm/taifexpulse/internal/logger"
	"github.com/guttosm/taifexpulse/internal/resample"
	"github.com/guttosm/taifexpulse/internal/storage"
)

const archiveSuffix = ".zip"

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.BarsRepository {
	return storage.NewBarsRepository(db)
}

// Options is the configuration surface the batch consumes.
type Options struct {
	Class    models.InstrumentClass
	ItemCode string        // underlying for the final nearby selection
	Freq     time.Duration // resample bucket width
	Label    resample.Label
	Session  resample.Session
	Parallel int  // >1 enables bounded parallel per-file aggregation
	Force    bool // reprocess archives already in the ingestion log
}

// ProcessDirectory resamples every tick archive in dir and returns the
// nearby-contract OHLCV series for opts.ItemCode.
//
// Behavior:
//   - Only entries ending in ".zip" are considered; others are ignored.
//   - An empty file set is "nothing to do": logs and returns a nil series
//     with no error.
//   - Each archive runs Normalizer → Sentinel Strip → Session Filter →
//     Aggregator; non-empty results are appended to the accumulation, which
//     is re-sorted by (date, grouping key) after every file.
//   - Archives already present in the ingestion log are skipped unless
//     opts.Force, which first deletes that archive's persisted bars.
//   - Per-file read or data errors are logged and skipped; an invalid
//     instrument class aborts the whole run.
//   - With opts.Parallel > 1, files are aggregated concurrently and the
//     partial results merged in filename order before sorting, so the output
//     is identical to the sequential path.
//
// After the last file the nearby selection runs once over the full
// accumulated table.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, opts Options) ([]models.NearbyBar, error) {
	if _, err := models.ParseInstrumentClass(string(opts.Class)); err != nil {
		return nil, err
	}
	repo := repoCtor(db)
	log := logger.Component("ingestion")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), archiveSuffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		log.Info().Str("dir", dir).Str("class", string(opts.Class)).Msg("no archives to resample")
		return nil, nil
	}

	log.Info().Int("files", len(files)).Str("dir", dir).Str("class", string(opts.Class)).Msg("resample start")

	var acc []models.Bar
	if opts.Parallel > 1 {
		acc, err = processParallel(ctx, dir, files, repo, opts)
	} else {
		acc, err = processSequential(ctx, dir, files, repo, opts)
	}
	if err != nil {
		return nil, err
	}

	series := resample.FilterNearby(acc, opts.ItemCode)
	log.Info().Int("bars", len(acc)).Int("nearby", len(series)).Str("item_code", opts.ItemCode).Msg("resample done")
	return series, nil
}

// processSequential is the reference path: one archive at a time, full
// deterministic resort of the accumulation after each file.
func processSequential(ctx context.Context, dir string, files []string, repo storage.BarsRepository, opts Options) ([]models.Bar, error) {
	log := logger.Component("ingestion")

	var acc []models.Bar
	for i, name := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		bars, err := processFile(dir, name, repo, opts)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInstrumentClass) {
				return nil, err
			}
			log.Warn().Str("file", name).Err(err).Msg("archive skipped")
			continue
		}
		log.Info().Int("idx", i+1).Int("total", len(files)).Str("file", name).Int("bars", len(bars)).Msg("file done")

		if len(bars) > 0 {
			acc = append(acc, bars...)
		}
		resample.SortBars(acc)
	}
	return acc, nil
}

// processParallel aggregates files concurrently with a bounded errgroup.
// Partial results land in a per-file slot and are merged in filename order,
// so the final table does not depend on completion order.
func processParallel(ctx context.Context, dir string, files []string, repo storage.BarsRepository, opts Options) ([]models.Bar, error) {
	log := logger.Component("ingestion")
	results := make([][]models.Bar, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)

	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bars, err := processFile(dir, name, repo, opts)
			if err != nil {
				if errors.Is(err, models.ErrInvalidInstrumentClass) {
					return err
				}
				log.Warn().Str("file", name).Err(err).Msg("archive skipped")
				return nil
			}
			results[i] = bars
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var acc []models.Bar
	for _, bars := range results {
		acc = append(acc, bars...)
	}
	resample.SortBars(acc)
	return acc, nil
}

// processFile runs one archive through the per-file pipeline and persists
// its bars. Already-ingested archives are skipped unless Force.
func processFile(dir, name string, repo storage.BarsRepository, opts Options) ([]models.Bar, error) {
	log := logger.Component("ingestion")
	start := time.Now()

	exists, err := repo.HasIngestionForFile(name)
	if err != nil {
		return nil, fmt.Errorf("check ingestion log: %w", err)
	}
	if exists && !opts.Force {
		log.Info().Str("file", name).Bool("skipped", true).Msg("already resampled")
		return nil, nil
	}
	if exists && opts.Force {
		if err := repo.DeleteBarsBySourceFile(name); err != nil {
			return nil, fmt.Errorf("delete existing bars: %w", err)
		}
	}

	bars, malformed, err := resampleArchive(filepath.Join(dir, name), opts)
	if err != nil {
		return nil, err
	}

	if len(bars) > 0 {
		if err := repo.InsertBarsBatch(name, bars); err != nil {
			return nil, fmt.Errorf("insert bars: %w", err)
		}
	}
	if err := repo.UpsertIngestionLog(name, len(bars)); err != nil {
		return nil, fmt.Errorf("upsert ingestion log: %w", err)
	}

	log.Debug().
		Str("file", name).
		Int("bars", len(bars)).
		Int("malformed", malformed).
		Dur("elapsed", time.Since(start)).
		Msg("archive resampled")
	return bars, nil
}

// resampleArchive is the pure per-file pipeline: read, normalize columns,
// strip the EOF sentinel, convert rows, filter the session window, and
// aggregate into bars. Malformed rows are dropped and counted, never fatal.
func resampleArchive(path string, opts Options) ([]models.Bar, int, error) {
	rows, err := readArchive(path)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}

	// The header probe is the width of the first line; files sometimes carry
	// one extra trailing marker column.
	cols, err := resample.ColumnNames(opts.Class, len(rows[0]))
	if err != nil {
		return nil, 0, err
	}

	skip := opts.Class.SkipRows()
	if len(rows) <= skip {
		return nil, 0, nil
	}
	data := resample.StripEOF(rows[skip:])

	idx := newColumnIndex(cols)
	log := logger.Component("ingestion")
	ticks := make([]models.Tick, 0, len(data))
	malformed := 0
	for _, rec := range data {
		tk, err := recordToTick(rec, idx)
		if err != nil {
			malformed++
			log.Debug().Err(err).Msg("malformed row dropped")
			continue
		}
		// Futures spread legs carry a composite contract code ("202403/202406").
		if opts.Class == models.ClassFuture && strings.Contains(tk.ContractMon, "/") {
			continue
		}
		ticks = append(ticks, tk)
	}

	filtered := resample.FilterSession(ticks, opts.Class, opts.Session)
	return resample.Resample(filtered, opts.Class, opts.Freq, opts.Label), malformed, nil
}
