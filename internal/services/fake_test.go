package services

import (
	"context"
	"io"
	"testing"

	"github.com/neoflix/neoflix-go/internal/graph"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// stub is one scripted query response. When contains is set, the
// executed query must include it.
type stub struct {
	contains string
	records  []graph.Record
	err      error
}

// fakeTx replays scripted responses in order and captures every query
// and its bound parameters for assertions.
type fakeTx struct {
	t       *testing.T
	stubs   []stub
	next    int
	Queries []string
	Params  []map[string]any
}

func (f *fakeTx) Run(_ context.Context, query string, params map[string]any) ([]graph.Record, error) {
	require.Less(f.t, f.next, len(f.stubs), "unexpected query: %s", query)
	s := f.stubs[f.next]
	f.next++

	if s.contains != "" {
		require.Contains(f.t, query, s.contains)
	}

	f.Queries = append(f.Queries, query)
	f.Params = append(f.Params, params)
	return s.records, s.err
}

func (f *fakeTx) exhausted() bool {
	return f.next == len(f.stubs)
}

// fakeExecutor satisfies graph.Executor with a single scripted
// transaction per call, counting how many transactions were opened.
type fakeExecutor struct {
	tx     *fakeTx
	Reads  int
	Writes int
}

func (f *fakeExecutor) ReadTx(ctx context.Context, work graph.TxWork) (any, error) {
	f.Reads++
	return work(ctx, f.tx)
}

func (f *fakeExecutor) WriteTx(ctx context.Context, work graph.TxWork) (any, error) {
	f.Writes++
	return work(ctx, f.tx)
}

func newFake(t *testing.T, stubs ...stub) (*fakeExecutor, *fakeTx) {
	tx := &fakeTx{t: t, stubs: stubs}
	return &fakeExecutor{tx: tx}, tx
}

// aliased wraps a map projection under its return alias, the shape the
// graph port produces for RETURN x {...} AS alias.
func aliased(alias string, m map[string]any) graph.Record {
	return graph.NewRecord([]string{alias}, map[string]any{alias: m})
}

func idRecord(id string) graph.Record {
	return graph.NewRecord([]string{"id"}, map[string]any{"id": id})
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
