package progress_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/application/progress"
	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}
func (m *MockJobRepository) Update(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}
func (m *MockJobRepository) Get(ctx context.Context, id string) (*job.Job, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*job.Job), args.Error(1)
}
func (m *MockJobRepository) GetForUpdate(ctx context.Context, id string) (*job.Job, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*job.Job), args.Error(1)
}
func (m *MockJobRepository) GetMany(ctx context.Context, ids []string) ([]*job.Job, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*job.Job), args.Error(1)
}

type MockDeliveryNoteRepository struct{ mock.Mock }

func (m *MockDeliveryNoteRepository) Add(ctx context.Context, n *deliverynote.Note) error {
	return m.Called(ctx, n).Error(0)
}
func (m *MockDeliveryNoteRepository) Update(ctx context.Context, n *deliverynote.Note) error {
	return m.Called(ctx, n).Error(0)
}
func (m *MockDeliveryNoteRepository) Get(ctx context.Context, id string) (*deliverynote.Note, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*deliverynote.Note), args.Error(1)
}
func (m *MockDeliveryNoteRepository) CountDeliveredBLs(ctx context.Context, jobID string) (int, error) {
	args := m.Called(ctx, jobID)
	return args.Int(0), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*payment.Payment, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*payment.Payment), args.Error(1)
}
func (m *MockPaymentRepository) ListByJob(ctx context.Context, jobID string) ([]*payment.Payment, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]*payment.Payment), args.Error(1)
}
func (m *MockPaymentRepository) CountOutstanding(ctx context.Context, jobID string) (int, error) {
	args := m.Called(ctx, jobID)
	return args.Int(0), args.Error(1)
}
func (m *MockPaymentRepository) AddVoucher(ctx context.Context, no kernel.SequenceID, meta payment.VoucherMeta, by string, at time.Time) error {
	return m.Called(ctx, no, meta, by, at).Error(0)
}

type store struct {
	jobs     *MockJobRepository
	notes    *MockDeliveryNoteRepository
	payments *MockPaymentRepository
}

func (s store) JobRepository() ports.JobRepository                   { return s.jobs }
func (s store) DeliveryNoteRepository() ports.DeliveryNoteRepository { return s.notes }
func (s store) PaymentRepository() ports.PaymentRepository           { return s.payments }

func newStore() store {
	return store{jobs: new(MockJobRepository), notes: new(MockDeliveryNoteRepository), payments: new(MockPaymentRepository)}
}

var at = time.Date(2025, 3, 18, 9, 0, 0, 0, time.UTC)

func twoBLJob(t *testing.T) *job.Job {
	return jobWithBLs(t, "MBL-A", "MBL-B")
}

func jobWithBLs(t *testing.T, masters ...string) *job.Job {
	t.Helper()
	id, _ := kernel.NewSequenceID(kernel.JobScope, at, 1)
	actor, _ := kernel.NewActor("ops.lee", kernel.RoleOperations)
	bls := make([]job.BillOfLading, 0, len(masters))
	for _, master := range masters {
		bl, err := job.NewBillOfLading(kernel.NewUUID(), job.BillOfLadingParams{MasterNo: master})
		require.NoError(t, err)
		bls = append(bls, bl)
	}
	j, err := job.NewJob(id, job.Counterparts{Customer: "ABC Trading"}, bls, nil, actor, at)
	require.NoError(t, err)
	return j
}

func TestReconciler_RecomputeDelivery(t *testing.T) {
	t.Run("should follow the two bill scenario", func(t *testing.T) {
		ctx := t.Context()
		s := newStore()
		j := twoBLJob(t)

		s.jobs.On("GetForUpdate", ctx, "SH-2025-001").Return(j, nil)
		s.notes.On("CountDeliveredBLs", ctx, "SH-2025-001").Return(1, nil).Once()
		s.jobs.On("Update", ctx, j).Return(nil)

		out, err := progress.NewReconciler().RecomputeDelivery(ctx, s, "SH-2025-001", at)
		require.NoError(t, err)
		assert.Equal(t, 50, out.Progress.Int())
		assert.Equal(t, job.New, j.Status())

		s.notes.On("CountDeliveredBLs", ctx, "SH-2025-001").Return(2, nil).Once()

		out, err = progress.NewReconciler().RecomputeDelivery(ctx, s, "SH-2025-001", at)
		require.NoError(t, err)
		assert.Equal(t, 100, out.Progress.Int())
		assert.Equal(t, job.Cleared, j.Status())
		assert.True(t, out.Cleared)
		s.jobs.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("should not write when nothing changed", func(t *testing.T) {
		ctx := t.Context()
		s := newStore()
		j := twoBLJob(t)

		s.jobs.On("GetForUpdate", ctx, "SH-2025-001").Return(j, nil)
		s.notes.On("CountDeliveredBLs", ctx, "SH-2025-001").Return(2, nil)
		s.jobs.On("Update", ctx, j).Return(nil).Once()

		r := progress.NewReconciler()
		first, err := r.RecomputeDelivery(ctx, s, "SH-2025-001", at)
		require.NoError(t, err)
		second, err := r.RecomputeDelivery(ctx, s, "SH-2025-001", at.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, first.Progress, second.Progress)
		assert.Equal(t, first.Status, second.Status)
		s.jobs.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("should clear a job already in Payment", func(t *testing.T) {
		ctx := t.Context()
		s := newStore()
		j := twoBLJob(t)
		_, err := j.Advance(job.PaymentConfirmation, at)
		require.NoError(t, err)
		_, err = j.Advance(job.Payment, at)
		require.NoError(t, err)

		s.jobs.On("GetForUpdate", ctx, "SH-2025-001").Return(j, nil)
		s.notes.On("CountDeliveredBLs", ctx, "SH-2025-001").Return(2, nil)
		s.jobs.On("Update", ctx, j).Return(nil)

		out, err := progress.NewReconciler().RecomputeDelivery(ctx, s, "SH-2025-001", at)
		require.NoError(t, err)
		assert.Equal(t, 100, out.Progress.Int())
		assert.Equal(t, job.Cleared, out.Status)
		assert.Equal(t, job.Cleared, j.Status())
		assert.True(t, out.Cleared)
	})
}

func TestReconciler_RecomputePaymentCompletion(t *testing.T) {
	ctx := t.Context()
	s := newStore()
	settled := twoBLJob(t)
	actor, _ := kernel.NewActor("acc.tan", kernel.RoleAccounts)

	s.payments.On("CountOutstanding", ctx, "SH-2025-001").Return(0, nil)
	s.payments.On("CountOutstanding", ctx, "SH-2025-002").Return(1, nil)
	s.jobs.On("GetForUpdate", ctx, "SH-2025-001").Return(settled, nil)
	s.jobs.On("Update", ctx, settled).Return(nil).Once()

	r := progress.NewReconciler()
	records, err := r.RecomputePaymentCompletion(ctx, s, []string{"SH-2025-001", "SH-2025-002"}, actor, at)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, event.ActionPaymentsSettled, records[0].Action)
	assert.Equal(t, "SH-2025-001", records[0].EntityID)
	assert.Equal(t, 75, settled.Progress().Int())
	s.jobs.AssertNotCalled(t, "GetForUpdate", ctx, "SH-2025-002")

	records, err = r.RecomputePaymentCompletion(ctx, s, []string{"SH-2025-001"}, actor, at)
	require.NoError(t, err)
	assert.Empty(t, records, "settlement is reported once per transition")
}

func TestReconciler_RecomputePaymentCompletion_ProgressAlreadyAtSettledValue(t *testing.T) {
	ctx := t.Context()
	s := newStore()
	j := jobWithBLs(t, "MBL-A", "MBL-B", "MBL-C", "MBL-D")
	actor, _ := kernel.NewActor("acc.tan", kernel.RoleAccounts)

	s.jobs.On("GetForUpdate", ctx, "SH-2025-001").Return(j, nil)
	s.notes.On("CountDeliveredBLs", ctx, "SH-2025-001").Return(3, nil)
	s.jobs.On("Update", ctx, j).Return(nil)
	s.payments.On("CountOutstanding", ctx, "SH-2025-001").Return(0, nil)

	r := progress.NewReconciler()
	out, err := r.RecomputeDelivery(ctx, s, "SH-2025-001", at)
	require.NoError(t, err)
	require.Equal(t, 75, out.Progress.Int(), "three of four bills delivered")
	require.Nil(t, j.SettledAt())

	records, err := r.RecomputePaymentCompletion(ctx, s, []string{"SH-2025-001"}, actor, at)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, event.ActionPaymentsSettled, records[0].Action)
	require.NotNil(t, j.SettledAt())
	assert.Equal(t, at, *j.SettledAt())
	s.jobs.AssertNumberOfCalls(t, "Update", 2)

	records, err = r.RecomputePaymentCompletion(ctx, s, []string{"SH-2025-001"}, actor, at)
	require.NoError(t, err)
	assert.Empty(t, records)
}
