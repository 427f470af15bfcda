package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/feed-archiver/app/cfg"
	"github.com/lysyi3m/feed-archiver/app/database"
)

func TestNewInvoker(t *testing.T) {
	for _, name := range []string{cfg.InvokerExec, cfg.InvokerShell} {
		invoker, err := newInvoker(&cfg.Cfg{Invoker: name, UserAgent: "test/1.0"})
		require.NoError(t, err, name)
		assert.NotNil(t, invoker, name)
	}

	invoker, err := newInvoker(&cfg.Cfg{Invoker: "ssh"})
	require.Error(t, err)
	assert.Nil(t, invoker)
	assert.Contains(t, err.Error(), `unknown invoker "ssh"`)
}

type countsRepo struct {
	counts map[string]int
	err    error
	runID  string
}

func (r *countsRepo) RecordCapture(context.Context, database.Capture) error { return nil }

func (r *countsRepo) GetStateCounts(_ context.Context, runID string) (map[string]int, error) {
	r.runID = runID
	return r.counts, r.err
}

func captureDefaultLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestLogLedgerCounts(t *testing.T) {
	buf := captureDefaultLog(t)
	repo := &countsRepo{counts: map[string]int{"done": 2, "failed": 1}}

	logLedgerCounts(context.Background(), repo, "run-1")

	assert.Equal(t, "run-1", repo.runID)
	assert.Contains(t, buf.String(), `msg="Ledger state counts"`)
	assert.Contains(t, buf.String(), "map[done:2 failed:1]")
}

func TestLogLedgerCountsError(t *testing.T) {
	buf := captureDefaultLog(t)

	logLedgerCounts(context.Background(), &countsRepo{err: errors.New("database is locked")}, "run-1")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "database is locked")
}
