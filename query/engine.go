// Package query implements the execution surface that turns a parsed
// lang.Action into a result, owning the process-wide cache of loaded series
// stores.
package query

import (
	"sync"

	"github.com/Serdnad/rtdb/lang"
	"github.com/Serdnad/rtdb/merge"
	"github.com/Serdnad/rtdb/storage"
	"github.com/Serdnad/rtdb/value"
)

// ResultKind tags which variant an ExecutionResult holds.
type ResultKind uint8

const (
	ResultQuery ResultKind = iota
	ResultInsert
)

// QueryResult is the outcome of a SELECT: the row count (not element count)
// and the merged records.
type QueryResult struct {
	Count   int
	Records merge.RecordCollection
}

// InsertResult is the outcome of an INSERT.
type InsertResult struct {
	Success bool
}

// ExecutionResult is the outcome of Engine.Execute, tagged by Kind.
type ExecutionResult struct {
	Kind   ResultKind
	Query  QueryResult
	Insert InsertResult
}

// Engine executes parsed actions against a process-wide, mutex-guarded
// cache of series stores keyed by series name. The mutex is held for the
// duration of the underlying storage call, not just the cache lookup —
// series stores are not otherwise safe for concurrent access.
type Engine struct {
	dataRoot string

	mu     sync.Mutex
	series map[string]*storage.SeriesStore
}

// NewEngine creates an Engine rooted at dataRoot (storage.DefaultDataRoot if
// empty).
func NewEngine(dataRoot string) *Engine {
	return &Engine{
		dataRoot: dataRoot,
		series:   make(map[string]*storage.SeriesStore),
	}
}

// Execute runs action and returns its result.
func (e *Engine) Execute(action lang.Action) (ExecutionResult, error) {
	switch action.Kind {
	case lang.ActionSelect:
		return e.executeSelect(action.Select)
	case lang.ActionInsert:
		return e.executeInsert(action.Insert)
	default:
		return ExecutionResult{}, nil
	}
}

func (e *Engine) executeSelect(q lang.SelectQuery) (ExecutionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ss, err := e.getOrLoad(q.Series)
	if err != nil {
		return ExecutionResult{}, err
	}

	selections := make([]storage.Selection, len(q.Selections))
	for i, sel := range q.Selections {
		selections[i] = storage.Selection{Field: sel.Field, Aggregator: string(sel.Aggregator)}
	}

	records, err := ss.Read(storage.Query{Start: q.Start, End: q.End, Selections: selections})
	if err != nil {
		return ExecutionResult{}, err
	}

	records = applyAggregators(records, q.Selections)

	return ExecutionResult{
		Kind: ResultQuery,
		Query: QueryResult{
			Count:   records.RowCount(),
			Records: records,
		},
	}, nil
}

func (e *Engine) executeInsert(ins lang.Insertion) (ExecutionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ss, err := e.getOrLoad(ins.Series)
	if err != nil {
		return ExecutionResult{}, err
	}

	if err := ss.Insert(storage.Insertion{Fields: ins.Fields, Values: ins.Values, Time: ins.Time}); err != nil {
		return ExecutionResult{}, err
	}

	return ExecutionResult{Kind: ResultInsert, Insert: InsertResult{Success: true}}, nil
}

// getOrLoad returns the cached series store for name, loading (or creating)
// it on first touch. Callers must hold e.mu.
func (e *Engine) getOrLoad(name string) (*storage.SeriesStore, error) {
	if ss, ok := e.series[name]; ok {
		return ss, nil
	}

	ss, err := storage.LoadSeriesStore(e.dataRoot, name, func(string) value.Kind { return value.KindFloat })
	if err != nil {
		return nil, err
	}

	e.series[name] = ss

	return ss, nil
}
