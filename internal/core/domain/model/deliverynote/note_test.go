package deliverynote_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, 3, 18, 8, 0, 0, 0, time.UTC)

func item(t *testing.T, jobNumber int) deliverynote.Item {
	t.Helper()
	jobID, err := kernel.NewSequenceID(kernel.JobScope, issuedAt, jobNumber)
	require.NoError(t, err)
	schedule := kernel.NewUUID()
	it, err := deliverynote.NewItem(kernel.NewUUID(), jobID, &schedule, 0, 1, "one carton crushed")
	require.NoError(t, err)
	return it
}

func newNote(t *testing.T, items ...deliverynote.Item) (*deliverynote.Note, error) {
	t.Helper()
	id, err := kernel.NewSequenceID(kernel.DeliveryNoteScope, issuedAt, 7)
	require.NoError(t, err)
	actor, err := kernel.NewActor("ops.lee", kernel.RoleOperations)
	require.NoError(t, err)
	return deliverynote.NewNote(
		id,
		deliverynote.Counterparts{Customer: "ABC Trading", Consignee: "ABC Trading Pte Ltd"},
		items,
		[]deliverynote.Vehicle{{PlateNo: "GBA 1234X", Driver: "Rahman"}},
		deliverynote.Dates{},
		" gate 3 ",
		actor,
		issuedAt,
	)
}

func TestNewNote(t *testing.T) {
	t.Run("should issue a pending note", func(t *testing.T) {
		n, err := newNote(t, item(t, 1), item(t, 2), item(t, 1))

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Equal(t, "DN-2025-03-007", n.ID().String())
		assert.Equal(t, deliverynote.StatusPending, n.Status())
		assert.Equal(t, issuedAt, n.Dates().IssuedOn)
		assert.Equal(t, "gate 3", n.Comments())
		assert.Equal(t, []string{"SH-2025-001", "SH-2025-002"}, n.JobIDs())
		assert.Len(t, n.Items(), 3)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		n, err := newNote(t)

		require.Error(t, err)
		assert.Nil(t, n)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, errs.IsValidation(err))
	})
}

func TestNewItem(t *testing.T) {
	jobID, _ := kernel.NewSequenceID(kernel.JobScope, issuedAt, 1)

	_, err := deliverynote.NewItem(kernel.NewUUID(), jobID, nil, -1, 0, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	it, err := deliverynote.NewItem(kernel.NewUUID(), jobID, nil, 0, 0, "")
	require.NoError(t, err)
	assert.Nil(t, it.ScheduleID())

	voucher, _ := kernel.NewSequenceID(kernel.VoucherScope, issuedAt, 1)
	_, err = deliverynote.NewItem(kernel.NewUUID(), voucher, nil, 0, 0, "")
	require.Error(t, err)
}

func TestNote_Documents(t *testing.T) {
	n, err := newNote(t, item(t, 1))
	require.NoError(t, err)

	err = n.ReplaceDocuments([]deliverynote.Document{{Name: "POD", Reference: ""}}, issuedAt)
	require.Error(t, err)
	assert.Empty(t, n.Documents())

	require.NoError(t, n.ReplaceDocuments([]deliverynote.Document{{Name: "POD", Reference: "s3://pod/1.pdf"}}, issuedAt))
	assert.Len(t, n.Documents(), 1)

	later := issuedAt.Add(3 * time.Hour)
	assert.True(t, n.MarkDelivered(later))
	assert.Equal(t, deliverynote.StatusDelivered, n.Status())
	assert.Equal(t, later, *n.Dates().DeliveredOn)
	assert.False(t, n.MarkDelivered(later.Add(time.Hour)))
}
