package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/libhub/library-service/internal/model"
)

func TestBorrowRecord_EffectiveStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	returned := now.Add(-24 * time.Hour)

	var tests = []struct {
		name   string
		record model.BorrowRecord
		want   model.Status
	}{
		{
			name:   "active before due date",
			record: model.BorrowRecord{Status: model.StatusBurrowed, DueDate: now.Add(time.Hour)},
			want:   model.StatusBurrowed,
		},
		{
			name:   "active past due date reads overdue",
			record: model.BorrowRecord{Status: model.StatusBurrowed, DueDate: now.Add(-time.Hour)},
			want:   model.StatusOverdue,
		},
		{
			name:   "due exactly now is not overdue",
			record: model.BorrowRecord{Status: model.StatusBurrowed, DueDate: now},
			want:   model.StatusBurrowed,
		},
		{
			name:   "returned stays returned past due date",
			record: model.BorrowRecord{Status: model.StatusReturned, DueDate: now.Add(-time.Hour), ReturnDate: &returned},
			want:   model.StatusReturned,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.record.EffectiveStatus(now))
		})
	}
}
