// Package graph is the access port to the transactional graph store.
// Services depend on the Executor interface rather than the driver, so
// unit tests can substitute an in-memory executor.
package graph

import "context"

// Tx runs parameterized queries inside an already-open transaction.
// User-supplied values must always bind as parameters; the only strings
// ever spliced into query text are allow-listed sort identifiers.
type Tx interface {
	Run(ctx context.Context, query string, params map[string]any) ([]Record, error)
}

// TxWork is the unit of work executed inside one scoped transaction.
// The transaction commits when work returns nil and rolls back otherwise.
type TxWork func(ctx context.Context, tx Tx) (any, error)

// Executor opens one read or write transaction per call and guarantees
// release on every exit path.
type Executor interface {
	ReadTx(ctx context.Context, work TxWork) (any, error)
	WriteTx(ctx context.Context, work TxWork) (any, error)
}

// Record is a single result row: an ordered mapping from return alias to
// a typed value (string, number, boolean, list, nested mapping).
type Record struct {
	Keys   []string
	values map[string]any
}

// NewRecord builds a record from ordered keys and their values.
func NewRecord(keys []string, values map[string]any) Record {
	return Record{Keys: keys, values: values}
}

// Get returns the value for a return alias.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetMap returns the value for a return alias as a nested mapping, the
// shape produced by Cypher map projections.
func (r Record) GetMap(key string) (map[string]any, bool) {
	v, ok := r.values[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// AsMap returns the record's values keyed by alias.
func (r Record) AsMap() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
