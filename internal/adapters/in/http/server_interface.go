package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/jobs)
	RegisterJob(ctx echo.Context) error
	// (GET /api/v1/jobs/{jobId})
	GetJob(ctx echo.Context, jobId string) error
	// (GET /api/v1/jobs/{jobId}/audit)
	GetJobAuditTrail(ctx echo.Context, jobId string) error
	// (POST /api/v1/jobs/{jobId}/clearance-schedules)
	ScheduleClearance(ctx echo.Context, jobId string) error
	// (POST /api/v1/jobs/{jobId}/payments)
	AddJobPayment(ctx echo.Context, jobId string) error
	// (POST /api/v1/jobs/{jobId}/complete)
	CompleteJob(ctx echo.Context, jobId string) error
	// (GET /api/v1/clearance-schedules)
	ListClearanceSchedules(ctx echo.Context, params ListClearanceSchedulesParams) error
	// (POST /api/v1/clearance-schedules/{scheduleId}/reschedule)
	RescheduleClearance(ctx echo.Context, scheduleId openapi_types.UUID) error
	// (POST /api/v1/delivery-notes)
	CreateDeliveryNote(ctx echo.Context) error
	// (PUT /api/v1/delivery-notes/{noteId}/documents)
	UpdateDeliveryNoteDocuments(ctx echo.Context, noteId string) error
	// (POST /api/v1/payments/send-to-accounts)
	SendPaymentsToAccounts(ctx echo.Context) error
	// (POST /api/v1/payments/request-confirmation)
	RequestConfirmation(ctx echo.Context) error
	// (POST /api/v1/payments/confirm)
	ConfirmPayments(ctx echo.Context) error
	// (POST /api/v1/payments/process)
	ProcessPaymentBatch(ctx echo.Context) error
	// (GET /api/v1/notifications)
	ListNotifications(ctx echo.Context, params ListNotificationsParams) error
	// (POST /api/v1/notifications/{notificationId}/read)
	MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) RegisterJob(ctx echo.Context) error {
	return w.Handler.RegisterJob(ctx)
}

func (w *ServerInterfaceWrapper) GetJob(ctx echo.Context) error {
	var jobId string
	if err := bindPath(ctx, "jobId", &jobId); err != nil {
		return err
	}
	return w.Handler.GetJob(ctx, jobId)
}

func (w *ServerInterfaceWrapper) GetJobAuditTrail(ctx echo.Context) error {
	var jobId string
	if err := bindPath(ctx, "jobId", &jobId); err != nil {
		return err
	}
	return w.Handler.GetJobAuditTrail(ctx, jobId)
}

func (w *ServerInterfaceWrapper) ScheduleClearance(ctx echo.Context) error {
	var jobId string
	if err := bindPath(ctx, "jobId", &jobId); err != nil {
		return err
	}
	return w.Handler.ScheduleClearance(ctx, jobId)
}

func (w *ServerInterfaceWrapper) AddJobPayment(ctx echo.Context) error {
	var jobId string
	if err := bindPath(ctx, "jobId", &jobId); err != nil {
		return err
	}
	return w.Handler.AddJobPayment(ctx, jobId)
}

func (w *ServerInterfaceWrapper) CompleteJob(ctx echo.Context) error {
	var jobId string
	if err := bindPath(ctx, "jobId", &jobId); err != nil {
		return err
	}
	return w.Handler.CompleteJob(ctx, jobId)
}

func (w *ServerInterfaceWrapper) ListClearanceSchedules(ctx echo.Context) error {
	var params ListClearanceSchedulesParams

	if err := runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "port", ctx.QueryParams(), &params.Port); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter port: %s", err))
	}

	return w.Handler.ListClearanceSchedules(ctx, params)
}

func (w *ServerInterfaceWrapper) RescheduleClearance(ctx echo.Context) error {
	var scheduleId openapi_types.UUID
	if err := bindPath(ctx, "scheduleId", &scheduleId); err != nil {
		return err
	}
	return w.Handler.RescheduleClearance(ctx, scheduleId)
}

func (w *ServerInterfaceWrapper) CreateDeliveryNote(ctx echo.Context) error {
	return w.Handler.CreateDeliveryNote(ctx)
}

func (w *ServerInterfaceWrapper) UpdateDeliveryNoteDocuments(ctx echo.Context) error {
	var noteId string
	if err := bindPath(ctx, "noteId", &noteId); err != nil {
		return err
	}
	return w.Handler.UpdateDeliveryNoteDocuments(ctx, noteId)
}

func (w *ServerInterfaceWrapper) SendPaymentsToAccounts(ctx echo.Context) error {
	return w.Handler.SendPaymentsToAccounts(ctx)
}

func (w *ServerInterfaceWrapper) RequestConfirmation(ctx echo.Context) error {
	return w.Handler.RequestConfirmation(ctx)
}

func (w *ServerInterfaceWrapper) ConfirmPayments(ctx echo.Context) error {
	return w.Handler.ConfirmPayments(ctx)
}

func (w *ServerInterfaceWrapper) ProcessPaymentBatch(ctx echo.Context) error {
	return w.Handler.ProcessPaymentBatch(ctx)
}

func (w *ServerInterfaceWrapper) ListNotifications(ctx echo.Context) error {
	var params ListNotificationsParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	return w.Handler.ListNotifications(ctx, params)
}

func (w *ServerInterfaceWrapper) MarkNotificationRead(ctx echo.Context) error {
	var notificationId openapi_types.UUID
	if err := bindPath(ctx, "notificationId", &notificationId); err != nil {
		return err
	}
	return w.Handler.MarkNotificationRead(ctx, notificationId)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/jobs", wrapper.RegisterJob)
	router.GET(baseURL+"/api/v1/jobs/:jobId", wrapper.GetJob)
	router.GET(baseURL+"/api/v1/jobs/:jobId/audit", wrapper.GetJobAuditTrail)
	router.POST(baseURL+"/api/v1/jobs/:jobId/clearance-schedules", wrapper.ScheduleClearance)
	router.POST(baseURL+"/api/v1/jobs/:jobId/payments", wrapper.AddJobPayment)
	router.POST(baseURL+"/api/v1/jobs/:jobId/complete", wrapper.CompleteJob)
	router.GET(baseURL+"/api/v1/clearance-schedules", wrapper.ListClearanceSchedules)
	router.POST(baseURL+"/api/v1/clearance-schedules/:scheduleId/reschedule", wrapper.RescheduleClearance)
	router.POST(baseURL+"/api/v1/delivery-notes", wrapper.CreateDeliveryNote)
	router.PUT(baseURL+"/api/v1/delivery-notes/:noteId/documents", wrapper.UpdateDeliveryNoteDocuments)
	router.POST(baseURL+"/api/v1/payments/send-to-accounts", wrapper.SendPaymentsToAccounts)
	router.POST(baseURL+"/api/v1/payments/request-confirmation", wrapper.RequestConfirmation)
	router.POST(baseURL+"/api/v1/payments/confirm", wrapper.ConfirmPayments)
	router.POST(baseURL+"/api/v1/payments/process", wrapper.ProcessPaymentBatch)
	router.GET(baseURL+"/api/v1/notifications", wrapper.ListNotifications)
	router.POST(baseURL+"/api/v1/notifications/:notificationId/read", wrapper.MarkNotificationRead)
}
