package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/errs"
	"github.com/libhub/library-service/internal/handler"
	service_mocks "github.com/libhub/library-service/internal/handler/mocks"
	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/pkg/validate"
)

func newTestHandler(t *testing.T, c *gomock.Controller) (*handler.Handler, *service_mocks.MockBorrowService, *service_mocks.MockBookService, *service_mocks.MockAuthService) {
	t.Helper()
	authSvc := service_mocks.NewMockAuthService(c)
	userSvc := service_mocks.NewMockUserService(c)
	bookSvc := service_mocks.NewMockBookService(c)
	borrowSvc := service_mocks.NewMockBorrowService(c)
	statsSvc := service_mocks.NewMockStatsService(c)
	log := zap.NewExample().Named("test")
	return handler.New(authSvc, userSvc, bookSvc, borrowSvc, statsSvc, log), borrowSvc, bookSvc, authSvc
}

func TestHandler_Burrow(t *testing.T) {
	t.Parallel()
	type input struct {
		bookUid string
		body    string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowService, inp input)

	const (
		userUid = "3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20"
		bookUid = "f7cdc58f-2caf-4b15-9727-f89dcc629b27"
	)
	burrowDate := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBorrowService, inp input) {
				r.EXPECT().
					Borrow(context.Background(), userUid, inp.bookUid).
					Return(model.BorrowRecord{
						RecordUid:  "c1d2e3f4-0000-4000-8000-000000000001",
						UserUid:    userUid,
						FullName:   "Jane Reader",
						Email:      "jane@example.com",
						BookUid:    inp.bookUid,
						Title:      "The Go Programming Language",
						Author:     "Alan Donovan",
						Category:   "Programming",
						BurrowDate: burrowDate,
						DueDate:    burrowDate.Add(model.BorrowPeriod),
						Status:     model.StatusBurrowed,
					}, nil)
			},
			input: input{
				bookUid: bookUid,
				body:    fmt.Sprintf(`{"user":%q,"book":%q}`, userUid, bookUid),
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"burrowRecord":{"recordUid":"c1d2e3f4-0000-4000-8000-000000000001","userUid":"3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20","fullName":"Jane Reader","email":"jane@example.com","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","title":"The Go Programming Language","author":"Alan Donovan","category":"Programming","burrowDate":"2026-08-01T10:00:00Z","dueDate":"2026-08-16T10:00:00Z","returnDate":null,"status":"burrowed"},"message":"Book borrowed successfully"}`,
			},
			wantErr: false,
		},
		{
			name: "book uid from path when body omits it",
			mockBehavior: func(r *service_mocks.MockBorrowService, inp input) {
				r.EXPECT().
					Borrow(context.Background(), userUid, inp.bookUid).
					Return(model.BorrowRecord{}, errs.ErrBookUnavailable)
			},
			input: input{
				bookUid: bookUid,
				body:    fmt.Sprintf(`{"user":%q}`, userUid),
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book is not available for borrowing"}`,
			},
			wantErr: true,
		},
		{
			name: "err. book not found",
			mockBehavior: func(r *service_mocks.MockBorrowService, inp input) {
				r.EXPECT().
					Borrow(context.Background(), userUid, inp.bookUid).
					Return(model.BorrowRecord{}, errs.ErrBookNotFound)
			},
			input: input{
				bookUid: "11111111-2222-4333-8444-555555555555",
				body:    fmt.Sprintf(`{"user":%q,"book":"11111111-2222-4333-8444-555555555555"}`, userUid),
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book not found"}`,
			},
			wantErr: true,
		},
		{
			name: "err. already borrowed",
			mockBehavior: func(r *service_mocks.MockBorrowService, inp input) {
				r.EXPECT().
					Borrow(context.Background(), userUid, inp.bookUid).
					Return(model.BorrowRecord{}, errs.ErrAlreadyBorrowed)
			},
			input: input{
				bookUid: bookUid,
				body:    fmt.Sprintf(`{"user":%q,"book":%q}`, userUid, bookUid),
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"you have already borrowed this book"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. user required",
			mockBehavior: func(r *service_mocks.MockBorrowService, inp input) {},
			input: input{
				bookUid: bookUid,
				body:    fmt.Sprintf(`{"book":%q}`, bookUid),
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'BurrowRequest.User' Error:Field validation for 'User' failed on the 'required' tag"}`,
			},
			wantErr: true,
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockBorrowService, inp input) {
				r.EXPECT().
					Borrow(context.Background(), userUid, inp.bookUid).
					Return(model.BorrowRecord{}, errors.New("db internal"))
			},
			input: input{
				bookUid: bookUid,
				body:    fmt.Sprintf(`{"user":%q,"book":%q}`, userUid, bookUid),
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			h, borrowSvc, _, _ := newTestHandler(t, c)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PUT("/api/books/burrow/:bookId", h.Burrow)

			r := httptest.NewRequest(http.MethodPut, "/api/books/burrow/"+tt.input.bookUid, strings.NewReader(tt.input.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(borrowSvc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowService, recordUid string)

	const recordUid = "c1d2e3f4-0000-4000-8000-000000000001"
	burrowDate := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	returnDate := time.Date(2026, time.August, 10, 9, 30, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		recordUid    string
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBorrowService, recordUid string) {
				r.EXPECT().
					Return(context.Background(), recordUid).
					Return(model.BorrowRecord{
						RecordUid:  recordUid,
						UserUid:    "3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20",
						FullName:   "Jane Reader",
						Email:      "jane@example.com",
						BookUid:    "f7cdc58f-2caf-4b15-9727-f89dcc629b27",
						Title:      "The Go Programming Language",
						Author:     "Alan Donovan",
						Category:   "Programming",
						BurrowDate: burrowDate,
						DueDate:    burrowDate.Add(model.BorrowPeriod),
						ReturnDate: &returnDate,
						Status:     model.StatusReturned,
					}, nil)
			},
			recordUid: recordUid,
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"burrowRecord":{"recordUid":"c1d2e3f4-0000-4000-8000-000000000001","userUid":"3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20","fullName":"Jane Reader","email":"jane@example.com","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","title":"The Go Programming Language","author":"Alan Donovan","category":"Programming","burrowDate":"2026-08-01T10:00:00Z","dueDate":"2026-08-16T10:00:00Z","returnDate":"2026-08-10T09:30:00Z","status":"returned"},"message":"Book returned successfully"}`,
			},
			wantErr: false,
		},
		{
			name: "err. already returned",
			mockBehavior: func(r *service_mocks.MockBorrowService, recordUid string) {
				r.EXPECT().
					Return(context.Background(), recordUid).
					Return(model.BorrowRecord{}, errs.ErrAlreadyReturned)
			},
			recordUid: recordUid,
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book already returned"}`,
			},
			wantErr: true,
		},
		{
			name: "err. record not found",
			mockBehavior: func(r *service_mocks.MockBorrowService, recordUid string) {
				r.EXPECT().
					Return(context.Background(), recordUid).
					Return(model.BorrowRecord{}, errs.ErrRecordNotFound)
			},
			recordUid: "00000000-0000-4000-8000-000000000000",
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"burrowing record not found"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			h, borrowSvc, _, _ := newTestHandler(t, c)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PUT("/api/books/return/:id", h.Return)

			r := httptest.NewRequest(http.MethodPut, "/api/books/return/"+tt.recordUid, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(borrowSvc, tt.recordUid)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_BurrowStatus(t *testing.T) {
	t.Parallel()
	const userUid = "3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20"
	burrowDate := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

	c := gomock.NewController(t)
	defer c.Finish()
	h, borrowSvc, _, _ := newTestHandler(t, c)

	borrowSvc.EXPECT().
		GetByUser(context.Background(), userUid).
		Return([]model.BorrowRecord{
			{
				RecordUid:  "c1d2e3f4-0000-4000-8000-000000000001",
				UserUid:    userUid,
				FullName:   "Jane Reader",
				Email:      "jane@example.com",
				BookUid:    "f7cdc58f-2caf-4b15-9727-f89dcc629b27",
				Title:      "The Go Programming Language",
				Author:     "Alan Donovan",
				Category:   "Programming",
				BurrowDate: burrowDate,
				DueDate:    burrowDate.Add(model.BorrowPeriod),
				Status:     model.StatusBurrowed,
			},
		}, nil)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.GET("/api/books/burrowstatus/:userId", h.BurrowStatus)

	r := httptest.NewRequest(http.MethodGet, "/api/books/burrowstatus/"+userUid, http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`[{"recordUid":"c1d2e3f4-0000-4000-8000-000000000001","userUid":"3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20","fullName":"Jane Reader","email":"jane@example.com","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","title":"The Go Programming Language","author":"Alan Donovan","category":"Programming","burrowDate":"2026-08-01T10:00:00Z","dueDate":"2026-08-16T10:00:00Z","returnDate":null,"status":"burrowed"}]`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_Counts(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	h, borrowSvc, _, _ := newTestHandler(t, c)

	borrowSvc.EXPECT().CountActive(context.Background()).Return(7, nil)
	borrowSvc.EXPECT().CountOverdue(context.Background()).Return(2, nil)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.GET("/api/burrowings/count", h.CountBurrowed)
	e.GET("/api/burrowings/overdue", h.CountOverdue)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/burrowings/count", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"burrowedBooksCount":7}`, strings.Trim(w.Body.String(), "\n"))

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/burrowings/overdue", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"overdueBooksCount":2}`, strings.Trim(w.Body.String(), "\n"))
}
