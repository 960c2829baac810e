// Package seeder loads the reference dataset into an empty store.
package seeder

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"

	"github.com/Ramsey-B/alloy/pkg/database"
	"github.com/Ramsey-B/alloy/pkg/dataset"
	"github.com/Ramsey-B/alloy/pkg/metrics"
	"github.com/Ramsey-B/alloy/pkg/repositories"
	"github.com/Ramsey-B/alloy/pkg/tracing"
)

// BatchSizes is the number of rows sent per INSERT for each table.
type BatchSizes struct {
	Materials           int
	Conditions          int
	ConditionProperties int
	Curves              int
	CurvePoints         int
}

func DefaultBatchSizes() BatchSizes {
	return BatchSizes{
		Materials:           500,
		Conditions:          500,
		ConditionProperties: 1000,
		Curves:              500,
		CurvePoints:         2000,
	}
}

// Result reports what a Seed call did.
type Result struct {
	// Skipped is set when the store already held materials.
	Skipped             bool          `json:"skipped"`
	Materials           int           `json:"materials"`
	Conditions          int           `json:"conditions"`
	DefaultConditions   int           `json:"default_conditions"`
	ConditionProperties int           `json:"condition_properties"`
	Curves              int           `json:"curves"`
	CurvePoints         int           `json:"curve_points"`
	Duration            time.Duration `json:"duration"`
}

// Seeder loads the dataset once, into an empty store, in a single transaction.
type Seeder struct {
	db        database.DB
	materials repositories.MaterialRepo
	source    dataset.Source
	logger    ectologger.Logger
	batches   BatchSizes
}

func NewSeeder(db database.DB, materials repositories.MaterialRepo, source dataset.Source, logger ectologger.Logger) *Seeder {
	return &Seeder{
		db:        db,
		materials: materials,
		source:    source,
		logger:    logger,
		batches:   DefaultBatchSizes(),
	}
}

// WithBatchSizes overrides the per-table batch sizes.
func (s *Seeder) WithBatchSizes(sizes BatchSizes) *Seeder {
	s.batches = sizes
	return s
}

// Seed loads the dataset when the materials table is empty and does nothing
// otherwise. Any failure rolls back every row written by this call.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "Seeder.Seed")
	defer span.End()

	start := time.Now()
	log := s.logger.WithContext(ctx).WithField("source", s.source.String())

	count, err := s.materials.Count(ctx)
	if err != nil {
		metrics.SeederDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
		return nil, errors.Wrap(err, "failed seeding dataset")
	}
	if count > 0 {
		metrics.SeederDuration.WithLabelValues("skipped").Observe(time.Since(start).Seconds())
		log.WithField("material_count", count).Info("store already seeded, skipping dataset load")
		return &Result{Skipped: true, Duration: time.Since(start)}, nil
	}

	result := &Result{}
	err = database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.Tx) error {
		return s.load(ctx, tx, result)
	})
	result.Duration = time.Since(start)
	if err != nil {
		metrics.SeederDuration.WithLabelValues("failed").Observe(result.Duration.Seconds())
		log.WithError(err).Error("failed seeding dataset, changes rolled back")
		return nil, errors.Wrap(err, "failed seeding dataset")
	}

	metrics.SeederDuration.WithLabelValues("seeded").Observe(result.Duration.Seconds())
	metrics.SeederRowsInserted.WithLabelValues("materials").Add(float64(result.Materials))
	metrics.SeederRowsInserted.WithLabelValues("conditions").Add(float64(result.Conditions))
	metrics.SeederRowsInserted.WithLabelValues("condition_properties").Add(float64(result.ConditionProperties))
	metrics.SeederRowsInserted.WithLabelValues("curves").Add(float64(result.Curves))
	metrics.SeederRowsInserted.WithLabelValues("curve_points").Add(float64(result.CurvePoints))

	log.WithFields(map[string]any{
		"materials":            result.Materials,
		"conditions":           result.Conditions,
		"default_conditions":   result.DefaultConditions,
		"condition_properties": result.ConditionProperties,
		"curves":               result.Curves,
		"curve_points":         result.CurvePoints,
		"duration_ms":          result.Duration.Milliseconds(),
	}).Info("seeded dataset")

	s.warnAmbiguousDefaults(ctx)

	return result, nil
}

func (s *Seeder) load(ctx context.Context, tx database.Tx, result *Result) error {
	defaults := map[int64]int64{}

	var err error
	if result.Materials, err = s.loadTable(ctx, tx, materialsTable(s.batches.Materials, defaults)); err != nil {
		return err
	}
	if result.Conditions, err = s.loadTable(ctx, tx, conditionsTable(s.batches.Conditions)); err != nil {
		return err
	}
	if result.DefaultConditions, err = s.applyDefaultConditions(ctx, tx, defaults); err != nil {
		return err
	}
	if result.ConditionProperties, err = s.loadTable(ctx, tx, conditionPropertiesTable(s.batches.ConditionProperties)); err != nil {
		return err
	}
	if result.Curves, err = s.loadTable(ctx, tx, curvesTable(s.batches.Curves)); err != nil {
		return err
	}
	if result.CurvePoints, err = s.loadTable(ctx, tx, curvePointsTable(s.batches.CurvePoints)); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) loadTable(ctx context.Context, tx database.Tx, t table) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "Seeder.load."+t.name)
	defer span.End()

	rc, err := s.source.Open(ctx, t.file)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	reader, err := newRecordReader(rc, t.required)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", t.file)
	}

	b := newBatcher(t.batchSize, func(ctx context.Context, rows [][]any) error {
		query, args := database.MultiInsert(s.db.Flavor(), t.name, t.columns, rows)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "failed to insert %d rows into %s", len(rows), t.name)
		}
		return nil
	})

	for {
		err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, errors.Wrapf(err, "%s", t.file)
		}

		row, err := t.row(reader)
		if err != nil {
			return 0, errors.Wrapf(err, "%s line %d", t.file, reader.Line())
		}
		if err := b.Add(ctx, row); err != nil {
			return 0, err
		}
	}

	if err := b.Flush(ctx); err != nil {
		return 0, err
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"table": t.name,
		"rows":  b.Total(),
	}).Debugf("Loaded %s", t.file)
	return b.Total(), nil
}

// applyDefaultConditions links each material to its default condition. The
// update only matches when the condition belongs to the material, so a
// dataset pointing a material at a foreign condition fails the load.
func (s *Seeder) applyDefaultConditions(ctx context.Context, tx database.Tx, defaults map[int64]int64) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "Seeder.applyDefaultConditions")
	defer span.End()

	materialIDs := make([]int64, 0, len(defaults))
	for id := range defaults {
		materialIDs = append(materialIDs, id)
	}
	sort.Slice(materialIDs, func(i, j int) bool { return materialIDs[i] < materialIDs[j] })

	flavor := s.db.Flavor()
	for _, materialID := range materialIDs {
		conditionID := defaults[materialID]

		owned := database.NewSelectBuilder(flavor)
		owned.Select("1").From("conditions").
			Where(owned.Equal("id", conditionID), owned.Equal("material_id", materialID))

		ub := database.NewUpdateBuilder(flavor)
		ub.Update("materials").
			Set(ub.Assign("default_condition_id", conditionID)).
			Where(ub.Equal("id", materialID), ub.Exists(owned))

		query, args := ub.Build()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to set default condition of material %d", materialID)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, errors.Wrap(err, "failed to read affected rows")
		}
		if n == 0 {
			return 0, errors.Errorf("default condition %d of material %d does not exist or belongs to another material", conditionID, materialID)
		}
	}

	return len(materialIDs), nil
}

// warnAmbiguousDefaults logs materials with more than one condition flagged
// default. Lookups resolve these to the lowest condition id.
func (s *Seeder) warnAmbiguousDefaults(ctx context.Context) {
	sb := database.NewSelectBuilder(s.db.Flavor())
	sb.Select("material_id").From("conditions").
		Where(sb.Equal("is_default", 1)).
		GroupBy("material_id").
		Having("COUNT(*) > 1").
		OrderBy("material_id")

	query, args := sb.Build()
	var materialIDs []int64
	if err := s.db.SelectContext(ctx, &materialIDs, query, args...); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("failed to check for ambiguous default conditions")
		return
	}
	if len(materialIDs) > 0 {
		s.logger.WithContext(ctx).WithField("material_ids", materialIDs).
			Warn("materials have more than one default condition, the lowest condition id is used")
	}
}
