package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService lets each test pin the service outcome.
type stubService struct {
	createFn func(ctx context.Context, req CreateRequest) (*ReservationWithCourt, error)
	payFn    func(ctx context.Context, id int64) (*ReservationWithCourt, error)
	cancelFn func(ctx context.Context, dni string, id int64) (*ReservationWithCourt, error)
	deleteFn func(ctx context.Context, id int64) (*DeleteSummary, error)
	listFn   func(ctx context.Context, f Filter) ([]ReservationWithCourt, error)
}

func (s *stubService) Create(ctx context.Context, req CreateRequest) (*ReservationWithCourt, error) {
	return s.createFn(ctx, req)
}

func (s *stubService) MarkPaid(ctx context.Context, id int64) (*ReservationWithCourt, error) {
	return s.payFn(ctx, id)
}

func (s *stubService) Cancel(ctx context.Context, dni string, id int64) (*ReservationWithCourt, error) {
	return s.cancelFn(ctx, dni, id)
}

func (s *stubService) Delete(ctx context.Context, id int64) (*DeleteSummary, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubService) List(ctx context.Context, f Filter) ([]ReservationWithCourt, error) {
	return s.listFn(ctx, f)
}

func testRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	router := gin.New()
	// Stand-in for the auth middleware: a fixed requester identity.
	router.Use(func(c *gin.Context) {
		c.Set("requester_dni", "12345678A")
		c.Set("requester_name", "Ana Garcia")
		c.Set("requester_role", "socio")
	})
	router.POST("/reservas", h.CreateReservation)
	router.GET("/reservas", h.ListMyReservations)
	router.POST("/reservas/:id/pagar", h.MarkPaid)
	router.POST("/reservas/:id/cancelar", h.Cancel)
	router.GET("/admin/reservas", h.AdminList)
	router.DELETE("/admin/reservas/:id", h.AdminDelete)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateReservation(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, req CreateRequest) (*ReservationWithCourt, error) {
			// Identity must come from the token, never the body.
			assert.Equal(t, "12345678A", req.RequesterID)
			assert.Equal(t, "Ana Garcia", req.RequesterName)
			return &ReservationWithCourt{
				Reservation: Reservation{ID: 1, CourtID: req.CourtID, Status: StatusPending, PriceCents: 1500},
				CourtName:   "Pista Central",
			}, nil
		},
	}

	body := map[string]interface{}{
		"pista":       1,
		"fecha":       "2026-09-01",
		"hora_inicio": "09:00",
		"hora_fin":    "10:30",
	}
	w := doJSON(t, testRouter(svc), http.MethodPost, "/reservas", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "pendiente")
	assert.Contains(t, w.Body.String(), "nombre_pista")
}

func TestHandler_CreateReservation_MissingBody(t *testing.T) {
	svc := &stubService{}
	w := doJSON(t, testRouter(svc), http.MethodPost, "/reservas", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateReservation_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid range", ErrInvalidTimeRange, http.StatusBadRequest},
		{"bad date", ErrBadDate, http.StatusBadRequest},
		{"court missing", ErrCourtNotFound, http.StatusNotFound},
		{"maintenance", ErrCourtUnavailable, http.StatusConflict},
		{"slot taken", ErrSlotUnavailable, http.StatusConflict},
		{"store down", ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	body := map[string]interface{}{
		"pista":       1,
		"fecha":       "2026-09-01",
		"hora_inicio": "09:00",
		"hora_fin":    "10:30",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{
				createFn: func(ctx context.Context, req CreateRequest) (*ReservationWithCourt, error) {
					return nil, tt.err
				},
			}
			w := doJSON(t, testRouter(svc), http.MethodPost, "/reservas", body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_MarkPaid(t *testing.T) {
	svc := &stubService{
		payFn: func(ctx context.Context, id int64) (*ReservationWithCourt, error) {
			assert.Equal(t, int64(7), id)
			return &ReservationWithCourt{Reservation: Reservation{ID: 7, Status: StatusPaid}}, nil
		},
	}

	w := doJSON(t, testRouter(svc), http.MethodPost, "/reservas/7/pagar", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pagado")
}

func TestHandler_MarkPaid_BadID(t *testing.T) {
	svc := &stubService{}
	w := doJSON(t, testRouter(svc), http.MethodPost, "/reservas/abc/pagar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MarkPaid_InvalidTransition(t *testing.T) {
	svc := &stubService{
		payFn: func(ctx context.Context, id int64) (*ReservationWithCourt, error) {
			return nil, ErrInvalidStateTransition
		},
	}

	w := doJSON(t, testRouter(svc), http.MethodPost, "/reservas/7/pagar", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Cancel_Forbidden(t *testing.T) {
	svc := &stubService{
		cancelFn: func(ctx context.Context, dni string, id int64) (*ReservationWithCourt, error) {
			assert.Equal(t, "12345678A", dni)
			return nil, ErrNotOwner
		},
	}

	w := doJSON(t, testRouter(svc), http.MethodPost, "/reservas/5/cancelar", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_ListMyReservations(t *testing.T) {
	svc := &stubService{
		listFn: func(ctx context.Context, f Filter) ([]ReservationWithCourt, error) {
			assert.Equal(t, "12345678A", f.RequesterID)
			return []ReservationWithCourt{}, nil
		},
	}

	w := doJSON(t, testRouter(svc), http.MethodGet, "/reservas", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHandler_AdminList_Filters(t *testing.T) {
	svc := &stubService{
		listFn: func(ctx context.Context, f Filter) ([]ReservationWithCourt, error) {
			assert.Equal(t, int64(2), f.CourtID)
			assert.Equal(t, "99999999Z", f.RequesterID)
			return []ReservationWithCourt{}, nil
		},
	}

	w := doJSON(t, testRouter(svc), http.MethodGet, "/admin/reservas?pista=2&dni=99999999Z", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_AdminDelete(t *testing.T) {
	svc := &stubService{
		deleteFn: func(ctx context.Context, id int64) (*DeleteSummary, error) {
			return &DeleteSummary{ID: id, CourtName: "Pista Central", Status: StatusPaid}, nil
		},
	}

	w := doJSON(t, testRouter(svc), http.MethodDelete, "/admin/reservas/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pista Central")
}

func TestHandler_AdminDelete_NotFound(t *testing.T) {
	svc := &stubService{
		deleteFn: func(ctx context.Context, id int64) (*DeleteSummary, error) {
			return nil, ErrReservationNotFound
		},
	}

	w := doJSON(t, testRouter(svc), http.MethodDelete, "/admin/reservas/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthIdentityRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&stubService{})

	router := gin.New()
	router.POST("/reservas", h.CreateReservation)

	w := doJSON(t, router, http.MethodPost, "/reservas", map[string]interface{}{"pista": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
