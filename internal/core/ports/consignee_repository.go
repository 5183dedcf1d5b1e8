package ports

import (
	"context"

	"freight/internal/core/domain/model/consignee"
)

// ConsigneeRepository reads the canonical consignee directory.
type ConsigneeRepository interface {
	List(ctx context.Context) ([]consignee.Entry, error)
}
