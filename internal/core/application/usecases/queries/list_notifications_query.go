package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery reads the unread inbox of a role, newest first.
// A zero limit means DefaultNotificationLimit.
type ListNotificationsQuery struct {
	role  kernel.Role
	limit int

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(role kernel.Role, limit int) (ListNotificationsQuery, error) {
	parsed, err := kernel.ParseRole(string(role))
	if err != nil {
		return ListNotificationsQuery{}, err
	}
	if limit == 0 {
		limit = DefaultNotificationLimit
	}
	if limit < 0 || limit > MaxNotificationLimit {
		return ListNotificationsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxNotificationLimit)
	}
	return ListNotificationsQuery{role: parsed, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) Role() kernel.Role { return q.role }
func (q ListNotificationsQuery) Limit() int        { return q.limit }

type NotificationResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
