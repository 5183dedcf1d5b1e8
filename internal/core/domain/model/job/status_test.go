package job_test

import (
	"testing"

	"freight/internal/core/domain/model/job"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		from    job.Status
		to      job.Status
		want    job.Status
		wantErr bool
	}{
		{job.New, job.Pending, job.Pending, false},
		{job.New, job.Cleared, job.Cleared, false},
		{job.New, job.Payment, job.Unknown, true},
		{job.New, job.Completed, job.Unknown, true},
		{job.Pending, job.Pending, job.Pending, false},
		{job.Pending, job.PaymentConfirmation, job.PaymentConfirmation, false},
		{job.Pending, job.Payment, job.Payment, false},
		{job.PaymentConfirmation, job.Pending, job.PaymentConfirmation, false},
		{job.PaymentConfirmation, job.Payment, job.Payment, false},
		{job.Cleared, job.Pending, job.Cleared, false},
		{job.Cleared, job.Payment, job.Payment, false},
		{job.Cleared, job.Completed, job.Completed, false},
		{job.Payment, job.Cleared, job.Cleared, false},
		{job.PaymentConfirmation, job.Cleared, job.Cleared, false},
		{job.Payment, job.Pending, job.Payment, false},
		{job.Payment, job.Completed, job.Completed, false},
		{job.Payment, job.New, job.Unknown, true},
		{job.Completed, job.Cleared, job.Completed, false},
		{job.Completed, job.Payment, job.Completed, false},
		{job.Completed, job.Pending, job.Unknown, true},
		{job.Completed, job.New, job.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+" to "+tt.to.String(), func(t *testing.T) {
			got, err := tt.from.TransitionTo(tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.False(t, tt.from.CanTransitionTo(tt.to))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_TransitionTo_InvalidTarget(t *testing.T) {
	_, err := job.New.TransitionTo(job.Unknown)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestParseStatus(t *testing.T) {
	s, err := job.ParseStatus("Payment Confirmation")
	require.NoError(t, err)
	assert.Equal(t, job.PaymentConfirmation, s)
	assert.Equal(t, "Payment Confirmation", s.String())

	_, err = job.ParseStatus("Unknown")
	require.Error(t, err)

	_, err = job.ParseStatus("cleared")
	require.Error(t, err)
}
