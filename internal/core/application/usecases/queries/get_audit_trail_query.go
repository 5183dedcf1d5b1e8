package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetAuditTrailQueryIsNotConstructed = errors.New(
	"GetAuditTrailQuery must be created via NewGetAuditTrailQuery constructor",
)

// GetAuditTrailQuery reads the audit entries recorded against a job, oldest first.
type GetAuditTrailQuery struct {
	jobID kernel.SequenceID

	guard guard.ConstructorGuard
}

func NewGetAuditTrailQuery(jobID kernel.SequenceID) (GetAuditTrailQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetAuditTrailQuery{}, err
	}
	return GetAuditTrailQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditTrailQueryIsNotConstructed)
}

func (q GetAuditTrailQuery) JobID() kernel.SequenceID { return q.jobID }

type AuditEntryResponse struct {
	Actor      string    `json:"actor"`
	ActorRole  string    `json:"actorRole,omitempty"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
