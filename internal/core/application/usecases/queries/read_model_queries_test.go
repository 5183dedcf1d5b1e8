package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/auditrepo"
	"freight/internal/adapters/out/postgres/consigneerepo"
	"freight/internal/adapters/out/postgres/notificationrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/dbtest"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type ReadModelQueriesTestSuite struct {
	suite.Suite
	db            *gorm.DB
	audit         *auditrepo.GormAuditRepository
	notifications *notificationrepo.GormNotificationRepository
	ops           kernel.Actor
	jobID         kernel.SequenceID
}

func (suite *ReadModelQueriesTestSuite) SetupTest() {
	suite.db = dbtest.NewSQLite(suite.T())
	suite.audit = auditrepo.NewGormAuditRepository(suite.db, clock.NewFixed(now))
	suite.notifications = notificationrepo.NewGormNotificationRepository(suite.db)

	var err error
	suite.ops, err = kernel.NewActor("jane", kernel.RoleOperations)
	suite.Require().NoError(err)
	suite.jobID, err = kernel.NewSequenceID(kernel.JobScope, now, 1)
	suite.Require().NoError(err)
}

func (suite *ReadModelQueriesTestSuite) record(action event.Action, entity event.EntityType, id string, at time.Time) event.Record {
	rec, err := event.NewRecord(suite.ops, action, entity, id, string(action), at)
	suite.Require().NoError(err)
	return rec
}

func (suite *ReadModelQueriesTestSuite) notify(role kernel.Role, at time.Time) event.Record {
	rec := suite.record(event.ActionDeliveryNoteCreated, event.EntityJob, suite.jobID.String(), at).NotifyRole(role)
	suite.Require().NoError(suite.notifications.Notify(context.Background(), rec))
	return rec
}

func (suite *ReadModelQueriesTestSuite) TestAuditTrailIsChronologicalAndScopedToTheJob() {
	ctx := context.Background()
	other, err := kernel.NewSequenceID(kernel.JobScope, now, 2)
	suite.Require().NoError(err)

	for _, rec := range []event.Record{
		suite.record(event.ActionClearanceScheduled, event.EntityJob, suite.jobID.String(), now.Add(time.Hour)),
		suite.record(event.ActionJobRegistered, event.EntityJob, suite.jobID.String(), now),
		suite.record(event.ActionJobRegistered, event.EntityJob, other.String(), now),
		suite.record(event.ActionPaymentAdded, event.EntityPayment, kernel.NewUUID().String(), now),
	} {
		suite.Require().NoError(suite.audit.Record(ctx, rec))
	}

	query, err := queries.NewGetAuditTrailQuery(suite.jobID)
	suite.Require().NoError(err)
	trail, err := queries.NewGetAuditTrailQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(trail, 2)
	suite.Equal(string(event.ActionJobRegistered), trail[0].Action)
	suite.Equal(string(event.ActionClearanceScheduled), trail[1].Action)
	suite.Equal("jane", trail[0].Actor)
	suite.Equal(string(kernel.RoleOperations), trail[0].ActorRole)
	suite.Equal(now, trail[0].OccurredAt)
}

func (suite *ReadModelQueriesTestSuite) TestAuditTrailOfUntouchedJobIsEmpty() {
	query, err := queries.NewGetAuditTrailQuery(suite.jobID)
	suite.Require().NoError(err)

	trail, err := queries.NewGetAuditTrailQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(trail)
	suite.Empty(trail)
}

func (suite *ReadModelQueriesTestSuite) TestNotificationsAreUnreadNewestFirstPerRole() {
	ctx := context.Background()
	older := suite.notify(kernel.RoleAccounts, now)
	newer := suite.notify(kernel.RoleAccounts, now.Add(time.Minute))
	read := suite.notify(kernel.RoleAccounts, now.Add(2*time.Minute))
	suite.notify(kernel.RoleClearance, now)

	suite.Require().NoError(suite.notifications.MarkRead(ctx, kernel.RoleAccounts, read.ID, now.Add(time.Hour)))

	query, err := queries.NewListNotificationsQuery(kernel.RoleAccounts, 0)
	suite.Require().NoError(err)
	inbox, err := queries.NewListNotificationsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(inbox, 2)
	suite.Equal(newer.ID.String(), inbox[0].ID)
	suite.Equal(older.ID.String(), inbox[1].ID)
	suite.Equal("job", inbox[0].EntityType)
	suite.Equal(suite.jobID.String(), inbox[0].EntityID)

	limited, err := queries.NewListNotificationsQuery(kernel.RoleAccounts, 1)
	suite.Require().NoError(err)
	inbox, err = queries.NewListNotificationsQueryHandler(suite.db).Handle(ctx, limited)
	suite.Require().NoError(err)
	suite.Require().Len(inbox, 1)
	suite.Equal(newer.ID.String(), inbox[0].ID)
}

func (suite *ReadModelQueriesTestSuite) TestMarkReadIsScopedToTheRole() {
	rec := suite.notify(kernel.RoleAccounts, now)

	err := suite.notifications.MarkRead(context.Background(), kernel.RoleClearance, rec.ID, now)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	err = suite.notifications.MarkRead(context.Background(), kernel.RoleAccounts, kernel.NewUUID(), now)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadModelQueriesTestSuite) TestGetJobSummarizesPayments() {
	ctx := context.Background()
	uow := postgres.NewGormUnitOfWorkFactory(suite.db).Create()
	suite.Require().NoError(uow.Begin(ctx))

	bl, err := job.NewBillOfLading(kernel.NewUUID(), job.BillOfLadingParams{MasterNo: "MAEU123", Vessel: "MAERSK KOLKATA"})
	suite.Require().NoError(err)
	j, err := job.NewJob(suite.jobID, job.Counterparts{Customer: "ABC Trading Pte Ltd", Consignee: "Acme"},
		[]job.BillOfLading{bl}, nil, suite.ops, now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.JobRepository().Add(ctx, j))

	for _, p := range []struct {
		kind   string
		amount string
	}{
		{"Port charges", "150.50"},
		{"Storage", "20"},
		{payment.NoPaymentType, "0"},
	} {
		pay, err := payment.NewPayment(kernel.NewUUID(), suite.jobID, p.kind, "PSA",
			decimal.RequireFromString(p.amount), payment.PayerCompany, suite.ops, now)
		suite.Require().NoError(err)
		suite.Require().NoError(uow.PaymentRepository().Add(ctx, pay))
	}
	suite.Require().NoError(uow.Commit(ctx))

	query, err := queries.NewGetJobQuery(suite.jobID)
	suite.Require().NoError(err)
	res, err := queries.NewGetJobQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("SH-2025-001", res.ID)
	suite.Equal("New", res.Status)
	suite.Equal(0, res.Progress)
	suite.Equal(1, res.TotalBLs)
	suite.Equal(0, res.DeliveredBLs)
	suite.Equal([]queries.BillOfLadingResponse{{MasterNo: "MAEU123", Vessel: "MAERSK KOLKATA"}}, res.BillsOfLading)
	suite.Equal(3, res.Payments.Count)
	suite.Equal(2, res.Payments.Outstanding)
	suite.Equal(1, res.Payments.NoPayment)
	suite.True(decimal.RequireFromString("170.50").Equal(res.Payments.OutstandingAmount))
	suite.True(res.Payments.PaidAmount.IsZero())
	suite.Equal(map[string]int{"Draft": 3}, res.Payments.ByStatus)
	suite.Nil(res.SettledAt)
}

func (suite *ReadModelQueriesTestSuite) TestGetJobNotFound() {
	query, err := queries.NewGetJobQuery(suite.jobID)
	suite.Require().NoError(err)

	_, err = queries.NewGetJobQueryHandler(suite.db).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadModelQueriesTestSuite) TestQueriesReportUnavailableStoreAsTransient() {
	ctx := context.Background()
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())

	schedules, err := queries.NewListClearanceSchedulesQuery(nil, nil, "")
	suite.Require().NoError(err)
	handler := queries.NewListClearanceSchedulesQueryHandler(suite.db,
		consigneerepo.NewGormConsigneeRepository(suite.db), slog.New(slog.DiscardHandler))
	_, err = handler.Handle(ctx, schedules)
	suite.ErrorIs(err, errs.ErrTransientIO)

	getJob, err := queries.NewGetJobQuery(suite.jobID)
	suite.Require().NoError(err)
	_, err = queries.NewGetJobQueryHandler(suite.db).Handle(ctx, getJob)
	suite.ErrorIs(err, errs.ErrTransientIO)

	trail, err := queries.NewGetAuditTrailQuery(suite.jobID)
	suite.Require().NoError(err)
	_, err = queries.NewGetAuditTrailQueryHandler(suite.db).Handle(ctx, trail)
	suite.ErrorIs(err, errs.ErrTransientIO)

	inbox, err := queries.NewListNotificationsQuery(kernel.RoleAccounts, 0)
	suite.Require().NoError(err)
	_, err = queries.NewListNotificationsQueryHandler(suite.db).Handle(ctx, inbox)
	suite.ErrorIs(err, errs.ErrTransientIO)
}

func TestReadModelQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelQueriesTestSuite))
}

func TestNewListNotificationsQuery(t *testing.T) {
	q, err := queries.NewListNotificationsQuery(kernel.RoleAccounts, 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultNotificationLimit, q.Limit())

	_, err = queries.NewListNotificationsQuery(kernel.RoleAccounts, queries.MaxNotificationLimit+1)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListNotificationsQuery(kernel.RoleAccounts, -1)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListNotificationsQuery(kernel.Role("Driver"), 10)
	assert.Error(t, err)
}

func TestQueriesRequireConstructor(t *testing.T) {
	_, err := queries.NewGetJobQueryHandler(nil).Handle(context.Background(), queries.GetJobQuery{})
	assert.ErrorIs(t, err, queries.ErrGetJobQueryIsNotConstructed)

	_, err = queries.NewListNotificationsQueryHandler(nil).Handle(context.Background(), queries.ListNotificationsQuery{})
	assert.ErrorIs(t, err, queries.ErrListNotificationsQueryIsNotConstructed)
}
