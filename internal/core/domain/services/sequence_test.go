package services_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSequenceID(t *testing.T) {
	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		scope    kernel.SequenceScope
		existing []string
		want     string
	}{
		{"first job of the year", kernel.JobScope, nil, "SH-2025-001"},
		{"after the highest", kernel.JobScope, []string{"SH-2025-002", "SH-2025-009", "SH-2025-004"}, "SH-2025-010"},
		{"gaps are not filled", kernel.VoucherScope, []string{"VH-2025-001", "VH-2025-005"}, "VH-2025-006"},
		{"other years ignored", kernel.JobScope, []string{"SH-2024-120"}, "SH-2025-001"},
		{"month resets delivery notes", kernel.DeliveryNoteScope, []string{"DN-2025-02-044"}, "DN-2025-03-001"},
		{"numeric not lexical maximum", kernel.DeliveryNoteScope, []string{"DN-2025-03-999", "DN-2025-03-1000"}, "DN-2025-03-1001"},
		{"malformed suffix ignored", kernel.JobScope, []string{"SH-2025-00A", "SH-2025-003"}, "SH-2025-004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := services.NextSequenceID(tt.scope, march, tt.existing)

			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}

	_, err := services.NextSequenceID(kernel.UnknownScope, march, nil)
	require.Error(t, err)
}
