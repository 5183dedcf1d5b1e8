package cmd

import (
	"fmt"
	"log/slog"

	"freight/internal/adapters/in/http"
	"freight/internal/adapters/out/outbox"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/auditrepo"
	"freight/internal/adapters/out/postgres/consigneerepo"
	"freight/internal/adapters/out/postgres/notificationrepo"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/jobs"
	"freight/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	dispatcher *outbox.Dispatcher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, clk clock.Clock, logger *slog.Logger) (CompositionRoot, error) {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	dispatcher, err := outbox.NewDispatcher(
		auditrepo.NewGormAuditRepository(gormDB, clk),
		notificationrepo.NewGormNotificationRepository(gormDB),
		outboxrepo.NewGormOutboxRepository(gormDB),
		clk,
		logger,
	)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("outbox dispatcher: %w", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: dispatcher,
		clock:      clk,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	factory := c.uowFactory
	return FuncUoWFactory(func() commands.UoW {
		return factory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterJobCommandHandler() commands.RegisterJobCommandHandler {
	return commands.NewRegisterJobCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateScheduleClearanceCommandHandler() commands.ScheduleClearanceCommandHandler {
	return commands.NewScheduleClearanceCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateRescheduleClearanceCommandHandler() commands.RescheduleClearanceCommandHandler {
	return commands.NewRescheduleClearanceCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateCreateDeliveryNoteCommandHandler() commands.CreateDeliveryNoteCommandHandler {
	return commands.NewCreateDeliveryNoteCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryNoteDocumentsCommandHandler() commands.UpdateDeliveryNoteDocumentsCommandHandler {
	return commands.NewUpdateDeliveryNoteDocumentsCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateAddJobPaymentCommandHandler() commands.AddJobPaymentCommandHandler {
	return commands.NewAddJobPaymentCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateSendPaymentsToAccountsCommandHandler() commands.SendPaymentsToAccountsCommandHandler {
	return commands.NewSendPaymentsToAccountsCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateRequestConfirmationCommandHandler() commands.RequestConfirmationCommandHandler {
	return commands.NewRequestConfirmationCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateConfirmPaymentsCommandHandler() commands.ConfirmPaymentsCommandHandler {
	return commands.NewConfirmPaymentsCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateProcessPaymentBatchCommandHandler() commands.ProcessPaymentBatchCommandHandler {
	return commands.NewProcessPaymentBatchCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCompleteJobCommandHandler() commands.CompleteJobCommandHandler {
	return commands.NewCompleteJobCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() (commands.MarkNotificationReadCommandHandler, error) {
	return commands.NewMarkNotificationReadCommandHandler(notificationrepo.NewGormNotificationRepository(c.gormDB), c.clock)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() (commands.RelayOutboxCommandHandler, error) {
	return commands.NewRelayOutboxCommandHandler(c.newUoWFactory(), c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditTrailQueryHandler() queries.GetAuditTrailQueryHandler {
	return queries.NewGetAuditTrailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListClearanceSchedulesQueryHandler() queries.ListClearanceSchedulesQueryHandler {
	return queries.NewListClearanceSchedulesQueryHandler(c.gormDB, consigneerepo.NewGormConsigneeRepository(c.gormDB), c.logger)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the inbound adapter.
func (c *CompositionRoot) CreateHTTPServer() (*http.Server, error) {
	markRead, err := c.CreateMarkNotificationReadCommandHandler()
	if err != nil {
		return nil, err
	}

	return http.NewServer(http.Handlers{
		RegisterJob:                 c.CreateRegisterJobCommandHandler(),
		ScheduleClearance:           c.CreateScheduleClearanceCommandHandler(),
		RescheduleClearance:         c.CreateRescheduleClearanceCommandHandler(),
		CreateDeliveryNote:          c.CreateCreateDeliveryNoteCommandHandler(),
		UpdateDeliveryNoteDocuments: c.CreateUpdateDeliveryNoteDocumentsCommandHandler(),
		AddJobPayment:               c.CreateAddJobPaymentCommandHandler(),
		SendPaymentsToAccounts:      c.CreateSendPaymentsToAccountsCommandHandler(),
		RequestConfirmation:         c.CreateRequestConfirmationCommandHandler(),
		ConfirmPayments:             c.CreateConfirmPaymentsCommandHandler(),
		ProcessPaymentBatch:         c.CreateProcessPaymentBatchCommandHandler(),
		CompleteJob:                 c.CreateCompleteJobCommandHandler(),
		MarkNotificationRead:        markRead,

		GetJob:                 c.CreateGetJobQueryHandler(),
		GetAuditTrail:          c.CreateGetAuditTrailQueryHandler(),
		ListClearanceSchedules: c.CreateListClearanceSchedulesQueryHandler(),
		ListNotifications:      c.CreateListNotificationsQueryHandler(),
	}, c.logger), nil
}

// CreateJobManager wires the outbox relay.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	handler, err := c.CreateRelayOutboxCommandHandler()
	if err != nil {
		return nil, err
	}
	command, err := commands.NewRelayOutboxCommand(c.config.OutboxGracePeriod, c.config.OutboxMaxAttempts, c.config.OutboxRelayBatch)
	if err != nil {
		return nil, fmt.Errorf("outbox relay settings: %w", err)
	}
	relay := jobs.NewOutboxRelayJob(handler, command, c.config.OutboxRelaySchedule, c.logger)
	return jobs.NewJobManager(relay), nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
