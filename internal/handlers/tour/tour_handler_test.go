package tour

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tourdesk-service/internal/domain/tour"
	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	created *tour.CreateTourRequest
	filters *tour.TourListFilters
}

func (f *fakeService) CreateTour(_ context.Context, req *tour.CreateTourRequest) (*tour.Tour, error) {
	f.created = req
	if req.EndDate.Before(req.StartDate) {
		return nil, xerrors.NewValidationError(map[string]string{"end_date": "must not be before start_date"})
	}
	return &tour.Tour{ID: 3, Name: req.Name, Price: req.Price}, nil
}

func (f *fakeService) GetTour(_ context.Context, id int64) (*tour.Tour, error) {
	if id != 3 {
		return nil, xerrors.ErrNotFound
	}
	return &tour.Tour{ID: 3, Name: "Cappadocia"}, nil
}

func (f *fakeService) UpdateTour(_ context.Context, id int64, req *tour.UpdateTourRequest) (*tour.Tour, error) {
	if id != 3 {
		return nil, xerrors.ErrNotFound
	}
	t := &tour.Tour{ID: 3, Status: tour.StatusScheduled}
	if req.Status != nil {
		t.Status = *req.Status
	}
	return t, nil
}

func (f *fakeService) DeleteTour(_ context.Context, id int64) error {
	if id != 3 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (f *fakeService) ListTours(_ context.Context, filters *tour.TourListFilters) (*tour.TourListResponse, error) {
	f.filters = filters
	return &tour.TourListResponse{Tours: []tour.Tour{}}, nil
}

func newRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTourHandler(svc)
	r := gin.New()
	r.GET("/tours", h.ListTours)
	r.POST("/tours", h.CreateTour)
	r.GET("/tours/:id", h.GetTour)
	r.PUT("/tours/:id", h.UpdateTour)
	r.DELETE("/tours/:id", h.DeleteTour)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTourParsesMoneyAndDates(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/tours", `{
		"name":"Cappadocia","description":"Balloons","destination":"Goreme",
		"duration_days":3,"price":"1500.00",
		"start_date":"2024-07-01T00:00:00Z","end_date":"2024-07-03T00:00:00Z",
		"max_participants":12}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, svc.created.Price.Equal(decimal.RequireFromString("1500")))
	assert.Contains(t, w.Body.String(), `"price":"1500"`)

	w = do(r, http.MethodPost, "/tours", `{
		"name":"Backwards","description":"x","destination":"y","price":"10",
		"start_date":"2024-07-03T00:00:00Z","end_date":"2024-07-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "end_date")
}

func TestTourReadWriteStatusCodes(t *testing.T) {
	r := newRouter(&fakeService{})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/tours/3", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/tours/4", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/tours/x", "").Code)

	w := do(r, http.MethodPut, "/tours/3", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/tours/3", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/tours/9", "").Code)
}

func TestListToursBindsFilters(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/tours?status=scheduled&status=in_progress&destination=Goreme&start_to=2024-12-31", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"scheduled", "in_progress"}, svc.filters.Statuses)
	assert.Equal(t, []string{"Goreme"}, svc.filters.Destinations)
	require.NotNil(t, svc.filters.StartTo)
	assert.Equal(t, 31, svc.filters.StartTo.Day())
}
