package clearancerepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/clearancerepo"
	"freight/internal/core/domain/model/clearance"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/dbtest"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var (
	now     = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	planned = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
)

type ClearanceRepositoryTestSuite struct {
	suite.Suite
	repo  *clearancerepo.GormClearanceRepository
	actor kernel.Actor
	jobID kernel.SequenceID
}

func (suite *ClearanceRepositoryTestSuite) SetupTest() {
	suite.repo = clearancerepo.NewGormClearanceRepository(dbtest.NewSQLite(suite.T()))

	var err error
	suite.actor, err = kernel.NewActor("lee", kernel.RoleClearance)
	suite.Require().NoError(err)
	suite.jobID, err = kernel.NewSequenceID(kernel.JobScope, now, 1)
	suite.Require().NoError(err)
}

func (suite *ClearanceRepositoryTestSuite) schedule(bl string, day time.Time) *clearance.Schedule {
	s, err := clearance.NewSchedule(kernel.NewUUID(), suite.jobID, bl, day, "Pasir Panjang", "Truck", suite.actor, now)
	suite.Require().NoError(err)
	return s
}

func (suite *ClearanceRepositoryTestSuite) TestAddAndGet() {
	ctx := context.Background()
	s := suite.schedule("MAEU123", planned.Add(15*time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, s))

	got, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal("SH-2025-001", got.JobID())
	suite.Equal("MAEU123", got.BLNumber())
	suite.True(planned.Equal(got.PlannedDate()), "planned date is stored as a calendar day")
	suite.Equal("Pasir Panjang", got.Port())
	suite.Zero(got.RescheduleCount())
}

func (suite *ClearanceRepositoryTestSuite) TestSameDayIsConflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Add(ctx, suite.schedule("MAEU123", planned)))

	err := suite.repo.Add(ctx, suite.schedule("MAEU123", planned))
	suite.ErrorIs(err, errs.ErrConflict)

	suite.NoError(suite.repo.Add(ctx, suite.schedule("MSCU456", planned)), "another bill of lading may share the day")
	suite.NoError(suite.repo.Add(ctx, suite.schedule("MAEU123", planned.AddDate(0, 0, 1))), "another day is free")
}

func (suite *ClearanceRepositoryTestSuite) TestExistsOnDayExcludesTheScheduleItself() {
	ctx := context.Background()
	s := suite.schedule("MAEU123", planned)
	suite.Require().NoError(suite.repo.Add(ctx, s))

	exists, err := suite.repo.ExistsOnDay(ctx, "SH-2025-001", "MAEU123", planned, nil)
	suite.Require().NoError(err)
	suite.True(exists)

	id := s.ID()
	exists, err = suite.repo.ExistsOnDay(ctx, "SH-2025-001", "MAEU123", planned, &id)
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *ClearanceRepositoryTestSuite) TestUpdateKeepsRescheduleHistory() {
	ctx := context.Background()
	s := suite.schedule("MAEU123", planned)
	suite.Require().NoError(suite.repo.Add(ctx, s))

	suite.Require().NoError(s.Reschedule(planned.AddDate(0, 0, 2), "vessel delayed", now.Add(time.Hour)))
	suite.Require().NoError(suite.repo.Update(ctx, s))

	got, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(1, got.RescheduleCount())
	suite.Equal("vessel delayed", got.RescheduleReason())
	suite.Require().NotNil(got.PreviousDate())
	suite.True(planned.Equal(*got.PreviousDate()))
	suite.True(planned.AddDate(0, 0, 2).Equal(got.PlannedDate()))
}

func (suite *ClearanceRepositoryTestSuite) TestMissingSchedules() {
	ctx := context.Background()
	s := suite.schedule("MAEU123", planned)
	suite.Require().NoError(suite.repo.Add(ctx, s))

	_, err := suite.repo.Get(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repo.GetMany(ctx, []kernel.UUID{s.ID(), kernel.NewUUID()})
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	delivered, err := suite.repo.IsDelivered(ctx, s.ID())
	suite.Require().NoError(err)
	suite.False(delivered)
}

func TestClearanceRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ClearanceRepositoryTestSuite))
}
