package postgres_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"freight/cmd"
	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/dbtest"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real
// PostgreSQL so row locks, advisory locks and unique keys behave as in
// production.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *dbtest.Postgres
	factory ports.UnitOfWorkFactory
	clock   *clock.Fixed
	actor   kernel.Actor
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := dbtest.RunPostgres(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)

	suite.actor, err = kernel.NewActor("jane", kernel.RoleOperations)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
	suite.clock = clock.NewFixed(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.JobRepository())
	suite.NotNil(uow1.PaymentRepository())
	suite.NotNil(uow2.DeliveryNoteRepository())
	suite.NotNil(uow2.OutboxRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsJob() {
	ctx := context.Background()
	j := suite.newJob(1, "MAEU123")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JobRepository().Add(ctx, j))

	_, err := uow.JobRepository().Get(ctx, j.ID().String())
	suite.Require().NoError(err, "job should be visible inside its transaction")
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().JobRepository().Get(ctx, j.ID().String())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_JobRoundTrip() {
	ctx := context.Background()
	j := suite.newJob(1, "MAEU123", "MSCU456")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JobRepository().Add(ctx, j))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().JobRepository().Get(ctx, "SH-2025-001")
	suite.Require().NoError(err)
	suite.Equal(job.New, got.Status())
	suite.Equal(0, got.Progress().Int())
	suite.Equal("ABC Trading Pte Ltd", got.Counterparts().Customer)
	suite.Require().Len(got.BillsOfLading(), 2)
	suite.Equal(2, got.TotalBLs())

	suite.Require().Len(got.Containers(), 1)
	c := got.Containers()[0]
	suite.Equal("TGHU1234567", c.Number())
	suite.Equal("MAEU123", c.BLNumber())
	suite.Equal([]job.Package{{Kind: "pallet", Quantity: 12}}, c.Packages())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_JobAndPaymentsCommitTogether() {
	ctx := context.Background()
	j := suite.newJob(1, "MAEU123")
	p, err := payment.NewPayment(kernel.NewUUID(), j.ID(), "Port charges", "PSA",
		decimal.RequireFromString("150.50"), payment.PayerCompany, suite.actor, suite.clock.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JobRepository().Add(ctx, j))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	payments, err := suite.factory.Create().PaymentRepository().ListByJob(ctx, j.ID().String())
	suite.Require().NoError(err)
	suite.Require().Len(payments, 1)
	suite.True(decimal.RequireFromString("150.50").Equal(payments[0].Amount()))
	suite.Equal(payment.Draft, payments[0].Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateVoucherIsConflict() {
	ctx := context.Background()
	voucherNo, err := kernel.NewSequenceID(kernel.VoucherScope, suite.clock.Now(), 1)
	suite.Require().NoError(err)
	meta, err := payment.NewVoucherMeta("Bank transfer", "TT-1", suite.clock.Now(), "")
	suite.Require().NoError(err)

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.PaymentRepository().AddVoucher(ctx, voucherNo, meta, "sam", suite.clock.Now()))
	suite.Require().NoError(first.Commit(ctx))

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()
	err = second.PaymentRepository().AddVoucher(ctx, voucherNo, meta, "sam", suite.clock.Now())
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentRegistrationsGetDistinctJobIDs() {
	root := suite.compositionRoot()
	handler := root.CreateRegisterJobCommandHandler()

	ids := suite.concurrently(8, func(ctx context.Context, _ int) (string, error) {
		command, err := commands.NewRegisterJobCommand(
			job.Counterparts{Customer: "ABC Trading Pte Ltd"},
			[]job.BillOfLadingParams{{MasterNo: "MAEU123"}},
			nil,
			suite.actor,
		)
		if err != nil {
			return "", err
		}
		return handler.Handle(ctx, command)
	})

	suite.Equal([]string{
		"SH-2025-001", "SH-2025-002", "SH-2025-003", "SH-2025-004",
		"SH-2025-005", "SH-2025-006", "SH-2025-007", "SH-2025-008",
	}, ids)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentDeliveryNotesGetDistinctNumbers() {
	ctx := context.Background()
	jobs := make([]kernel.SequenceID, 5)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	for i := range jobs {
		j := suite.newJob(i+1, "MAEU123")
		suite.Require().NoError(uow.JobRepository().Add(ctx, j))
		jobs[i] = j.ID()
	}
	suite.Require().NoError(uow.Commit(ctx))

	root := suite.compositionRoot()
	handler := root.CreateCreateDeliveryNoteCommandHandler()
	ids := suite.concurrently(len(jobs), func(ctx context.Context, i int) (string, error) {
		command, err := commands.NewCreateDeliveryNoteCommand(
			[]commands.DeliveryItemInput{{JobID: jobs[i]}},
			nil,
			deliverynote.Dates{IssuedOn: suite.clock.Now()},
			"",
			suite.actor,
		)
		if err != nil {
			return "", err
		}
		result, err := handler.Handle(ctx, command)
		return result.NoteID, err
	})

	suite.Equal([]string{
		"DN-2025-03-001", "DN-2025-03-002", "DN-2025-03-003", "DN-2025-03-004", "DN-2025-03-005",
	}, ids)
}

func (suite *UnitOfWorkIntegrationTestSuite) compositionRoot() cmd.CompositionRoot {
	root, err := cmd.NewCompositionRoot(cmd.Config{}, suite.pg.DB, suite.clock, nil)
	suite.Require().NoError(err)
	return root
}

// concurrently runs fn n times in parallel and returns the sorted results.
func (suite *UnitOfWorkIntegrationTestSuite) concurrently(n int, fn func(ctx context.Context, i int) (string, error)) []string {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []string
		failure error
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := fn(ctx, i)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failure = errors.Join(failure, err)
				return
			}
			results = append(results, id)
		}()
	}
	wg.Wait()

	suite.Require().NoError(failure)
	sort.Strings(results)
	return results
}

func (suite *UnitOfWorkIntegrationTestSuite) newJob(n int, bls ...string) *job.Job {
	id, err := kernel.NewSequenceID(kernel.JobScope, suite.clock.Now(), n)
	suite.Require().NoError(err)

	billsOfLading := make([]job.BillOfLading, 0, len(bls))
	for _, master := range bls {
		bl, err := job.NewBillOfLading(kernel.NewUUID(), job.BillOfLadingParams{MasterNo: master, Vessel: "MAERSK KOLKATA"})
		suite.Require().NoError(err)
		billsOfLading = append(billsOfLading, bl)
	}
	container, err := job.NewContainer("TGHU1234567", "40HC", bls[0], []job.Package{{Kind: "pallet", Quantity: 12}})
	suite.Require().NoError(err)

	j, err := job.NewJob(id, job.Counterparts{Customer: "ABC Trading Pte Ltd"}, billsOfLading,
		[]job.Container{container}, suite.actor, suite.clock.Now())
	suite.Require().NoError(err)
	return j
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
