package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/clock"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testClock() clock.Clock {
	return clock.NewFixed(testNow)
}

func testActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor("jane", role)
	require.NoError(t, err)
	return actor
}

func testJobID(t *testing.T, n int) kernel.SequenceID {
	t.Helper()
	id, err := kernel.NewSequenceID(kernel.JobScope, testNow, n)
	require.NoError(t, err)
	return id
}

// restoredJob builds a job with one bill of lading in the given state.
func restoredJob(t *testing.T, status job.Status, progress kernel.Progress) *job.Job {
	t.Helper()
	bl, err := job.NewBillOfLading(kernel.NewUUID(), job.BillOfLadingParams{MasterNo: "MAEU123"})
	require.NoError(t, err)

	j, err := job.RestoreJob(job.Snapshot{
		ID:           testJobID(t, 1),
		Counterparts: job.Counterparts{Customer: "ABC Trading Pte Ltd"},
		BLs:          []job.BillOfLading{bl},
		Status:       status,
		Progress:     progress,
		CreatedBy:    "jane",
		CreatedAt:    testNow.Add(-48 * time.Hour),
		UpdatedAt:    testNow.Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	return j
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
