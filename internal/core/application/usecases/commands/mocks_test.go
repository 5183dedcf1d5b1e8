package commands_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
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
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}
func (m *MockJobRepository) GetForUpdate(ctx context.Context, id string) (*job.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}
func (m *MockJobRepository) GetMany(ctx context.Context, ids []string) ([]*job.Job, error) {
	args := m.Called(ctx, ids)
	jobs, _ := args.Get(0).([]*job.Job)
	return jobs, args.Error(1)
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
	payments, _ := args.Get(0).([]*payment.Payment)
	return payments, args.Error(1)
}
func (m *MockPaymentRepository) ListByJob(ctx context.Context, jobID string) ([]*payment.Payment, error) {
	args := m.Called(ctx, jobID)
	payments, _ := args.Get(0).([]*payment.Payment)
	return payments, args.Error(1)
}
func (m *MockPaymentRepository) CountOutstanding(ctx context.Context, jobID string) (int, error) {
	args := m.Called(ctx, jobID)
	return args.Int(0), args.Error(1)
}
func (m *MockPaymentRepository) AddVoucher(
	ctx context.Context, voucherNo kernel.SequenceID, meta payment.VoucherMeta, processedBy string, at time.Time,
) error {
	return m.Called(ctx, voucherNo, meta, processedBy, at).Error(0)
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
	note, _ := args.Get(0).(*deliverynote.Note)
	return note, args.Error(1)
}
func (m *MockDeliveryNoteRepository) CountDeliveredBLs(ctx context.Context, jobID string) (int, error) {
	args := m.Called(ctx, jobID)
	return args.Int(0), args.Error(1)
}

type MockSequenceRepository struct{ mock.Mock }

func (m *MockSequenceRepository) Lock(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}
func (m *MockSequenceRepository) ListIDs(ctx context.Context, scope kernel.SequenceScope, prefix string) ([]string, error) {
	args := m.Called(ctx, scope, prefix)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, records ...event.Record) error {
	return m.Called(ctx, records).Error(0)
}
func (m *MockOutboxRepository) ListPending(ctx context.Context, olderThan time.Time, maxAttempts, limit int) ([]event.Record, error) {
	args := m.Called(ctx, olderThan, maxAttempts, limit)
	records, _ := args.Get(0).([]event.Record)
	return records, args.Error(1)
}
func (m *MockOutboxRepository) MarkDispatched(ctx context.Context, id kernel.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

// MockUoW hands out repositories registered with On; the ones a test never
// expects are left nil.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) JobRepository() ports.JobRepository {
	return m.Called().Get(0).(ports.JobRepository)
}
func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	return m.Called().Get(0).(ports.PaymentRepository)
}
func (m *MockUoW) DeliveryNoteRepository() ports.DeliveryNoteRepository {
	return m.Called().Get(0).(ports.DeliveryNoteRepository)
}
func (m *MockUoW) ClearanceRepository() ports.ClearanceRepository {
	return m.Called().Get(0).(ports.ClearanceRepository)
}
func (m *MockUoW) SequenceRepository() ports.SequenceRepository {
	return m.Called().Get(0).(ports.SequenceRepository)
}
func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, records []event.Record) {
	m.Called(ctx, records)
}

type MockNotificationInbox struct{ mock.Mock }

func (m *MockNotificationInbox) MarkRead(ctx context.Context, role kernel.Role, id kernel.UUID, at time.Time) error {
	return m.Called(ctx, role, id, at).Error(0)
}
