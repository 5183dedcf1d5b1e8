package http

import (
	"log/slog"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Handlers groups the use cases the HTTP surface exposes.
type Handlers struct {
	RegisterJob                 commands.RegisterJobCommandHandler
	ScheduleClearance           commands.ScheduleClearanceCommandHandler
	RescheduleClearance         commands.RescheduleClearanceCommandHandler
	CreateDeliveryNote          commands.CreateDeliveryNoteCommandHandler
	UpdateDeliveryNoteDocuments commands.UpdateDeliveryNoteDocumentsCommandHandler
	AddJobPayment               commands.AddJobPaymentCommandHandler
	SendPaymentsToAccounts      commands.SendPaymentsToAccountsCommandHandler
	RequestConfirmation         commands.RequestConfirmationCommandHandler
	ConfirmPayments             commands.ConfirmPaymentsCommandHandler
	ProcessPaymentBatch         commands.ProcessPaymentBatchCommandHandler
	CompleteJob                 commands.CompleteJobCommandHandler
	MarkNotificationRead        commands.MarkNotificationReadCommandHandler

	GetJob                 queries.GetJobQueryHandler
	GetAuditTrail          queries.GetAuditTrailQueryHandler
	ListClearanceSchedules queries.ListClearanceSchedulesQueryHandler
	ListNotifications      queries.ListNotificationsQueryHandler
}

// Server implements ServerInterface. It turns requests into commands and
// queries and maps their errors to status codes.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{handlers: handlers, logger: logger.With("component", "http")}
}

// RegisterJob handles POST /api/v1/jobs.
func (s *Server) RegisterJob(ctx echo.Context) error {
	var body NewJob
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	counterparts := job.Counterparts{
		Customer:      body.Customer,
		Consignee:     deref(body.Consignee),
		ConsigneeCode: deref(body.ConsigneeCode),
		Exporter:      deref(body.Exporter),
		Shipper:       deref(body.Shipper),
	}
	bls := make([]job.BillOfLadingParams, 0, len(body.BillsOfLading))
	for _, bl := range body.BillsOfLading {
		bls = append(bls, job.BillOfLadingParams{
			MasterNo:        bl.MasterNo,
			HouseNo:         deref(bl.HouseNo),
			Vessel:          deref(bl.Vessel),
			PortOfLoading:   deref(bl.PortOfLoading),
			PortOfDischarge: deref(bl.PortOfDischarge),
		})
	}
	containers := make([]commands.ContainerInput, 0, len(body.Containers))
	for _, c := range body.Containers {
		packages := make([]job.Package, 0, len(c.Packages))
		for _, p := range c.Packages {
			packages = append(packages, job.Package{Kind: p.Kind, Quantity: p.Quantity})
		}
		containers = append(containers, commands.ContainerInput{
			Number:   c.Number,
			Kind:     deref(c.Kind),
			BLNumber: deref(c.BlNumber),
			Packages: packages,
		})
	}

	cmd, err := commands.NewRegisterJobCommand(counterparts, bls, containers, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	jobID, err := s.handlers.RegisterJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: jobID})
}

// GetJob handles GET /api/v1/jobs/{jobId}.
func (s *Server) GetJob(ctx echo.Context, jobId string) error {
	id, err := kernel.ParseSequenceID(kernel.JobScope, jobId)
	if err != nil {
		return s.respondError(ctx, err)
	}
	query, err := queries.NewGetJobQuery(id)
	if err != nil {
		return s.respondError(ctx, err)
	}
	res, err := s.handlers.GetJob.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

// GetJobAuditTrail handles GET /api/v1/jobs/{jobId}/audit.
func (s *Server) GetJobAuditTrail(ctx echo.Context, jobId string) error {
	id, err := kernel.ParseSequenceID(kernel.JobScope, jobId)
	if err != nil {
		return s.respondError(ctx, err)
	}
	query, err := queries.NewGetAuditTrailQuery(id)
	if err != nil {
		return s.respondError(ctx, err)
	}
	entries, err := s.handlers.GetAuditTrail.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]AuditEntry, len(entries))
	for i, e := range entries {
		response[i] = AuditEntry{
			Actor:      e.Actor,
			ActorRole:  optional(e.ActorRole),
			Action:     e.Action,
			Details:    e.Details,
			OccurredAt: e.OccurredAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ScheduleClearance handles POST /api/v1/jobs/{jobId}/clearance-schedules.
func (s *Server) ScheduleClearance(ctx echo.Context, jobId string) error {
	var body NewClearanceSchedule
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	id, err := kernel.ParseSequenceID(kernel.JobScope, jobId)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewScheduleClearanceCommand(id, body.BlNumber, body.PlannedDate.Time,
		deref(body.Port), deref(body.Method), actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	scheduleID, err := s.handlers.ScheduleClearance.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: scheduleID.String()})
}

// AddJobPayment handles POST /api/v1/jobs/{jobId}/payments.
func (s *Server) AddJobPayment(ctx echo.Context, jobId string) error {
	var body NewPayment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	id, err := kernel.ParseSequenceID(kernel.JobScope, jobId)
	if err != nil {
		return s.respondError(ctx, err)
	}
	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid amount: "+body.Amount)
	}
	payer, err := payment.ParsePayer(body.Payer)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAddJobPaymentCommand(id, body.Type, deref(body.Vendor), amount, payer, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	paymentID, err := s.handlers.AddJobPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: paymentID.String()})
}

// CompleteJob handles POST /api/v1/jobs/{jobId}/complete.
func (s *Server) CompleteJob(ctx echo.Context, jobId string) error {
	id, err := kernel.ParseSequenceID(kernel.JobScope, jobId)
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewCompleteJobCommand(id, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.handlers.CompleteJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListClearanceSchedules handles GET /api/v1/clearance-schedules.
func (s *Server) ListClearanceSchedules(ctx echo.Context, params ListClearanceSchedulesParams) error {
	query, err := queries.NewListClearanceSchedulesQuery(dateOf(params.From), dateOf(params.To), deref(params.Port))
	if err != nil {
		return s.respondError(ctx, err)
	}
	schedules, err := s.handlers.ListClearanceSchedules.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, schedules)
}

// RescheduleClearance handles POST /api/v1/clearance-schedules/{scheduleId}/reschedule.
func (s *Server) RescheduleClearance(ctx echo.Context, scheduleId openapi_types.UUID) error {
	var body Reschedule
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	id, err := kernel.UUIDFromGoogle(scheduleId)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewRescheduleClearanceCommand(id, body.NewDate.Time, body.Reason, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.handlers.RescheduleClearance.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateDeliveryNote handles POST /api/v1/delivery-notes.
func (s *Server) CreateDeliveryNote(ctx echo.Context) error {
	var body NewDeliveryNote
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.DeliveryItemInput, 0, len(body.Items))
	for _, it := range body.Items {
		jobID, err := kernel.ParseSequenceID(kernel.JobScope, it.JobId)
		if err != nil {
			return s.respondError(ctx, err)
		}
		input := commands.DeliveryItemInput{
			JobID:    jobID,
			Shortage: derefInt(it.Shortage),
			Damage:   derefInt(it.Damage),
			Remarks:  deref(it.Remarks),
		}
		if it.ScheduleId != nil {
			scheduleID, err := kernel.UUIDFromGoogle(*it.ScheduleId)
			if err != nil {
				return s.respondError(ctx, err)
			}
			input.ScheduleID = &scheduleID
		}
		items = append(items, input)
	}
	vehicles := make([]deliverynote.Vehicle, 0, len(body.Vehicles))
	for _, v := range body.Vehicles {
		vehicles = append(vehicles, deliverynote.Vehicle{PlateNo: v.PlateNo, Driver: deref(v.Driver), Phone: deref(v.Phone)})
	}

	cmd, err := commands.NewCreateDeliveryNoteCommand(items, vehicles,
		deliverynote.Dates{IssuedOn: body.IssuedOn.Time}, deref(body.Comments), actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	res, err := s.handlers.CreateDeliveryNote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := DeliveryNoteCreated{Id: res.NoteID, Jobs: make([]JobProgress, len(res.Jobs))}
	for i, j := range res.Jobs {
		response.Jobs[i] = JobProgress{JobId: j.JobID, Progress: j.Progress, Status: j.Status}
	}
	return ctx.JSON(http.StatusCreated, response)
}

// UpdateDeliveryNoteDocuments handles PUT /api/v1/delivery-notes/{noteId}/documents.
func (s *Server) UpdateDeliveryNoteDocuments(ctx echo.Context, noteId string) error {
	var body DocumentsUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	documents := make([]deliverynote.Document, len(body.Documents))
	for i, d := range body.Documents {
		documents[i] = deliverynote.Document{Name: d.Name, Reference: d.Reference}
	}
	markDelivered := body.MarkDelivered != nil && *body.MarkDelivered

	cmd, err := commands.NewUpdateDeliveryNoteDocumentsCommand(noteId, documents, markDelivered, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.handlers.UpdateDeliveryNoteDocuments.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SendPaymentsToAccounts handles POST /api/v1/payments/send-to-accounts.
func (s *Server) SendPaymentsToAccounts(ctx echo.Context) error {
	ids, err := bindPaymentIDs(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewSendPaymentsToAccountsCommand(ids, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.handlers.SendPaymentsToAccounts.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RequestConfirmation handles POST /api/v1/payments/request-confirmation.
func (s *Server) RequestConfirmation(ctx echo.Context) error {
	ids, err := bindPaymentIDs(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewRequestConfirmationCommand(ids, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.handlers.RequestConfirmation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmPayments handles POST /api/v1/payments/confirm.
func (s *Server) ConfirmPayments(ctx echo.Context) error {
	ids, err := bindPaymentIDs(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewConfirmPaymentsCommand(ids, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.handlers.ConfirmPayments.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ProcessPaymentBatch handles POST /api/v1/payments/process.
func (s *Server) ProcessPaymentBatch(ctx echo.Context) error {
	var body PaymentProcessing
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	ids, err := toKernelUUIDs(body.PaymentIds)
	if err != nil {
		return s.respondError(ctx, err)
	}
	meta, err := payment.NewVoucherMeta(body.Method, deref(body.Reference), body.PaidOn.Time, deref(body.Remarks))
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewProcessPaymentBatchCommand(ids, meta, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	voucherNo, err := s.handlers.ProcessPaymentBatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, VoucherCreated{VoucherNo: voucherNo})
}

// ListNotifications handles GET /api/v1/notifications for the caller's role.
func (s *Server) ListNotifications(ctx echo.Context, params ListNotificationsParams) error {
	query, err := queries.NewListNotificationsQuery(actorFrom(ctx).Role(), derefInt(params.Limit))
	if err != nil {
		return s.respondError(ctx, err)
	}
	rows, err := s.handlers.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]Notification, len(rows))
	for i, n := range rows {
		response[i] = Notification{
			Id:         n.ID,
			Action:     n.Action,
			EntityType: n.EntityType,
			EntityId:   n.EntityID,
			Message:    n.Message,
			CreatedAt:  n.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(notificationId)
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewMarkNotificationReadCommand(id, actorFrom(ctx))
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.handlers.MarkNotificationRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func bindPaymentIDs(ctx echo.Context) ([]kernel.UUID, error) {
	var body PaymentBatch
	if err := ctx.Bind(&body); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return toKernelUUIDs(body.PaymentIds)
}

func toKernelUUIDs(raw []openapi_types.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromGoogle(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func dateOf(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
