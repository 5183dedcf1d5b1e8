package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Ids     []string `json:"ids,omitempty"`
}

// Created defines model for Created.
type Created struct {
	Id string `json:"id"`
}

// BillOfLading defines model for BillOfLading.
type BillOfLading struct {
	MasterNo        string  `json:"masterNo"`
	HouseNo         *string `json:"houseNo,omitempty"`
	Vessel          *string `json:"vessel,omitempty"`
	PortOfLoading   *string `json:"portOfLoading,omitempty"`
	PortOfDischarge *string `json:"portOfDischarge,omitempty"`
}

// Package defines model for a container package line.
type Package struct {
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
}

// Container defines model for Container.
type Container struct {
	Number   string    `json:"number"`
	Kind     *string   `json:"kind,omitempty"`
	BlNumber *string   `json:"blNumber,omitempty"`
	Packages []Package `json:"packages,omitempty"`
}

// NewJob defines model for NewJob.
type NewJob struct {
	Customer      string         `json:"customer"`
	Consignee     *string        `json:"consignee,omitempty"`
	ConsigneeCode *string        `json:"consigneeCode,omitempty"`
	Exporter      *string        `json:"exporter,omitempty"`
	Shipper       *string        `json:"shipper,omitempty"`
	BillsOfLading []BillOfLading `json:"billsOfLading,omitempty"`
	Containers    []Container    `json:"containers,omitempty"`
}

// NewClearanceSchedule defines model for NewClearanceSchedule.
type NewClearanceSchedule struct {
	BlNumber    string             `json:"blNumber"`
	PlannedDate openapi_types.Date `json:"plannedDate"`
	Port        *string            `json:"port,omitempty"`
	Method      *string            `json:"method,omitempty"`
}

// Reschedule defines model for Reschedule.
type Reschedule struct {
	NewDate openapi_types.Date `json:"newDate"`
	Reason  string             `json:"reason"`
}

// NewPayment defines model for NewPayment.
type NewPayment struct {
	Type   string  `json:"type"`
	Vendor *string `json:"vendor,omitempty"`
	Amount string  `json:"amount"`
	Payer  string  `json:"payer"`
}

// DeliveryItem defines model for a delivery note line.
type DeliveryItem struct {
	JobId      string              `json:"jobId"`
	ScheduleId *openapi_types.UUID `json:"scheduleId,omitempty"`
	Shortage   *int                `json:"shortage,omitempty"`
	Damage     *int                `json:"damage,omitempty"`
	Remarks    *string             `json:"remarks,omitempty"`
}

// Vehicle defines model for a delivery vehicle.
type Vehicle struct {
	PlateNo string  `json:"plateNo"`
	Driver  *string `json:"driver,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// NewDeliveryNote defines model for NewDeliveryNote.
type NewDeliveryNote struct {
	Items    []DeliveryItem     `json:"items"`
	Vehicles []Vehicle          `json:"vehicles,omitempty"`
	IssuedOn openapi_types.Date `json:"issuedOn"`
	Comments *string            `json:"comments,omitempty"`
}

// JobProgress defines model for a recomputed job.
type JobProgress struct {
	JobId    string `json:"jobId"`
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}

// DeliveryNoteCreated defines model for DeliveryNoteCreated.
type DeliveryNoteCreated struct {
	Id   string        `json:"id"`
	Jobs []JobProgress `json:"jobs"`
}

// Document defines model for an attached document.
type Document struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

// DocumentsUpdate defines model for DocumentsUpdate.
type DocumentsUpdate struct {
	Documents     []Document `json:"documents"`
	MarkDelivered *bool      `json:"markDelivered,omitempty"`
}

// PaymentBatch defines model for PaymentBatch.
type PaymentBatch struct {
	PaymentIds []openapi_types.UUID `json:"paymentIds"`
}

// PaymentProcessing defines model for PaymentProcessing.
type PaymentProcessing struct {
	PaymentIds []openapi_types.UUID `json:"paymentIds"`
	Method     string               `json:"method"`
	Reference  *string              `json:"reference,omitempty"`
	PaidOn     openapi_types.Date   `json:"paidOn"`
	Remarks    *string              `json:"remarks,omitempty"`
}

// VoucherCreated defines model for VoucherCreated.
type VoucherCreated struct {
	VoucherNo string `json:"voucherNo"`
}

// AuditEntry defines model for AuditEntry.
type AuditEntry struct {
	Actor      string    `json:"actor"`
	ActorRole  *string   `json:"actorRole,omitempty"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Notification defines model for Notification.
type Notification struct {
	Id         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityId   string    `json:"entityId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListClearanceSchedulesParams defines parameters for ListClearanceSchedules.
type ListClearanceSchedulesParams struct {
	From *openapi_types.Date `form:"from,omitempty" json:"from,omitempty"`
	To   *openapi_types.Date `form:"to,omitempty" json:"to,omitempty"`
	Port *string             `form:"port,omitempty" json:"port,omitempty"`
}

// ListNotificationsParams defines parameters for ListNotifications.
type ListNotificationsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}
