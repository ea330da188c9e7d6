package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/objectstore"
	"github.com/dmitrijs2005/vpndb/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/vpndb/internal/common"
	"github.com/dmitrijs2005/vpndb/internal/logging"
)

// VersionKey is the meta key holding the stored schema version.
const VersionKey = "schema_version"

// Store is the part of the object store the engine needs.
type Store interface {
	Meta(ctx context.Context, key string) (string, bool, error)
	Migrate(ctx context.Context, fn func(ctx context.Context, tx *objectstore.Tx) error) error
}

// Step is one change applied to every record of Entity when the stored
// version is below Threshold. A Drop step deletes the whole bucket instead.
type Step struct {
	Threshold   int
	Entity      string
	Description string
	Apply       func(sc *StepContext, i int, rec *Record) error
	Drop        bool
}

// Record is the record a step is visiting. Old is the stored document and
// must not be changed; the step edits New.
type Record struct {
	Key     string
	Old     Document
	New     Document
	removed bool
}

// Remove deletes the record instead of rewriting it.
func (r *Record) Remove() { r.removed = true }

// StepContext gives a step access to the running transaction and the
// preference store.
type StepContext struct {
	ctx   context.Context
	tx    *objectstore.Tx
	prefs preferences.Repository
	log   logging.Logger
	seq   int
}

func (sc *StepContext) Context() context.Context            { return sc.ctx }
func (sc *StepContext) Tx() *objectstore.Tx                 { return sc.tx }
func (sc *StepContext) Preferences() preferences.Repository { return sc.prefs }
func (sc *StepContext) Logger() logging.Logger              { return sc.log }

// Next returns 0, 1, 2, ... across one step. Used to number nested
// records whose ids must be unique across all parents.
func (sc *StepContext) Next() int {
	n := sc.seq
	sc.seq++
	return n
}

// Result summarizes a run.
type Result struct {
	From    int
	To      int
	Applied []int
	Visited int
}

type Engine struct {
	store  Store
	prefs  preferences.Repository
	log    logging.Logger
	steps  []Step
	target int
}

// New builds an engine targeting CurrentVersion. With no steps the
// built-in step list is used.
func New(store Store, prefs preferences.Repository, log logging.Logger, steps ...Step) *Engine {
	if len(steps) == 0 {
		steps = Steps()
	}
	return &Engine{
		store:  store,
		prefs:  prefs,
		log:    log.With("component", "schema"),
		steps:  steps,
		target: CurrentVersion,
	}
}

// Target is the version Run brings the store to.
func (e *Engine) Target() int { return e.target }

// StoredVersion reads the committed schema version; a store that never
// recorded one is at version 0.
func (e *Engine) StoredVersion(ctx context.Context) (int, error) {
	raw, ok, err := e.store.Meta(ctx, VersionKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", VersionKey, raw, err)
	}
	return v, nil
}

// Run brings the stored data up to the target version. Each threshold runs
// in its own transaction together with the version bump, so a failure
// leaves the store at the last fully applied threshold.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	stored, err := e.StoredVersion(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", common.ErrMigrationFailure, err)
	}
	res := Result{From: stored, To: stored}

	if stored > e.target {
		return res, fmt.Errorf("%w: %w: stored %d, supported %d",
			common.ErrMigrationFailure, common.ErrSchemaTooNew, stored, e.target)
	}
	if stored == e.target {
		e.log.Debug(ctx, "schema up to date", "version", stored)
		return res, nil
	}

	e.log.Info(ctx, "migrating schema", "from", stored, "to", e.target)

	for _, group := range e.pending(stored) {
		threshold := group[0].Threshold
		visited := 0
		err := e.store.Migrate(ctx, func(ctx context.Context, tx *objectstore.Tx) error {
			for _, st := range group {
				n, err := e.apply(ctx, tx, st)
				if err != nil {
					return fmt.Errorf("%s (%s): %w", st.Entity, st.Description, err)
				}
				visited += n
			}
			return tx.SetMeta(ctx, VersionKey, strconv.Itoa(threshold))
		})
		if err != nil {
			e.log.Error(ctx, "migration step failed", "threshold", threshold, "error", err)
			return res, fmt.Errorf("%w: version %d: %w", common.ErrMigrationFailure, threshold, err)
		}
		res.To = threshold
		res.Applied = append(res.Applied, threshold)
		res.Visited += visited
		e.log.Debug(ctx, "migration step applied", "threshold", threshold, "records", visited)
	}

	if res.To < e.target {
		err := e.store.Migrate(ctx, func(ctx context.Context, tx *objectstore.Tx) error {
			return tx.SetMeta(ctx, VersionKey, strconv.Itoa(e.target))
		})
		if err != nil {
			return res, fmt.Errorf("%w: version %d: %w", common.ErrMigrationFailure, e.target, err)
		}
		res.To = e.target
	}

	e.log.Info(ctx, "schema migrated", "from", res.From, "to", res.To, "steps", len(res.Applied))
	return res, nil
}

// pending groups the steps above stored by threshold, in ascending order.
// Steps sharing a threshold keep their declaration order.
func (e *Engine) pending(stored int) [][]Step {
	var todo []Step
	for _, st := range e.steps {
		if st.Threshold > stored && st.Threshold <= e.target {
			todo = append(todo, st)
		}
	}
	sort.SliceStable(todo, func(i, j int) bool { return todo[i].Threshold < todo[j].Threshold })

	var groups [][]Step
	for _, st := range todo {
		if n := len(groups); n > 0 && groups[n-1][0].Threshold == st.Threshold {
			groups[n-1] = append(groups[n-1], st)
			continue
		}
		groups = append(groups, []Step{st})
	}
	return groups
}

func (e *Engine) apply(ctx context.Context, tx *objectstore.Tx, st Step) (int, error) {
	if st.Drop {
		n, err := tx.DeleteBucket(ctx, st.Entity)
		if err != nil {
			return 0, err
		}
		e.log.Debug(ctx, "bucket dropped", "entity", st.Entity, "records", n)
		return int(n), nil
	}
	if st.Apply == nil {
		return 0, nil
	}

	rows, err := tx.Scan(ctx, st.Entity)
	if err != nil {
		return 0, err
	}

	sc := &StepContext{ctx: ctx, tx: tx, prefs: e.prefs, log: e.log}
	keyField := models.KeyFields[st.Entity]

	var out []output
	for i, row := range rows {
		doc, err := decodeDocument(row.Data)
		if err != nil {
			return i, fmt.Errorf("decode %s: %w", row.Key, err)
		}
		rec := &Record{Key: row.Key, Old: doc, New: doc.Clone()}
		if err := st.Apply(sc, i, rec); err != nil {
			return i, fmt.Errorf("record %s: %w", row.Key, err)
		}
		o, changed, err := resolve(keyField, rec)
		if err != nil {
			return i, err
		}
		if changed {
			out = append(out, o)
		}
	}

	// Moved and removed rows go first so a new key never lands on a row
	// that is itself about to move.
	for _, o := range out {
		if o.removed || o.key != o.oldKey {
			if _, err := tx.Delete(ctx, st.Entity, o.oldKey); err != nil {
				return len(rows), err
			}
		}
	}
	for _, o := range out {
		if o.removed {
			continue
		}
		if err := tx.Put(ctx, st.Entity, o.key, o.data); err != nil {
			return len(rows), err
		}
	}
	return len(rows), nil
}

type output struct {
	oldKey  string
	key     string
	data    []byte
	removed bool
}

// resolve works out where a visited record goes. changed is false when the
// record needs no write.
func resolve(keyField string, rec *Record) (output, bool, error) {
	o := output{oldKey: rec.Key, key: rec.Key}
	if rec.removed {
		o.removed = true
		return o, true, nil
	}

	if keyField != "" {
		if k, ok := keyOf(rec.New, keyField); ok {
			o.key = k
		}
	}
	if o.key == o.oldKey && reflect.DeepEqual(rec.Old, rec.New) {
		return o, false, nil
	}

	data, err := json.Marshal(rec.New)
	if err != nil {
		return o, false, fmt.Errorf("encode %s: %w", rec.Key, err)
	}
	o.data = data
	return o, true, nil
}
