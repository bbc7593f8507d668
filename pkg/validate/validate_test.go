package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/pkg/validate"
)

func TestCustomValidator_Signup(t *testing.T) {
	t.Parallel()
	v := validate.NewCustomValidator()

	var tests = []struct {
		name    string
		req     model.SignupRequest
		wantErr bool
	}{
		{
			name:    "ok",
			req:     model.SignupRequest{FullName: "Jane Reader", Email: "jane@example.com", Password: "correcthorse"},
			wantErr: false,
		},
		{
			name:    "digits in full name",
			req:     model.SignupRequest{FullName: "Jane Reader 2", Email: "jane@example.com", Password: "correcthorse"},
			wantErr: true,
		},
		{
			name:    "bad email",
			req:     model.SignupRequest{FullName: "Jane Reader", Email: "not-an-email", Password: "correcthorse"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     model.SignupRequest{FullName: "Jane Reader", Email: "jane@example.com", Password: "short"},
			wantErr: true,
		},
		{
			name:    "missing full name",
			req:     model.SignupRequest{Email: "jane@example.com", Password: "correcthorse"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(&tt.req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCustomValidator_BookCopies(t *testing.T) {
	t.Parallel()
	v := validate.NewCustomValidator()

	negative := -1
	req := model.UpdateBookRequest{TotalCopies: &negative}
	require.Error(t, v.Validate(&req))

	zero := 0
	req = model.UpdateBookRequest{TotalCopies: &zero}
	require.NoError(t, v.Validate(&req))
}
