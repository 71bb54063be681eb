package reports

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/suninet/suninet/internal/pricing"
	"github.com/suninet/suninet/internal/subscribers"
)

func newTestRouter(repo *memoryRepo) http.Handler {
	handler := NewHandler(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewService(repo, pricing.Default()),
		func() time.Time { return time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC) },
	)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func TestPeriodEndpointRejectsHalfOpenRange(t *testing.T) {
	repo := &memoryRepo{
		payments: []PaymentJoin{{CustomerID: 1, AmountPaid: 1400, Month: 1, Year: 2026,
			PaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}},
	}
	router := newTestRouter(repo)

	for _, target := range []string{
		"/reports?start_date=2026-01-01",
		"/reports?end_date=2026-01-31",
	} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestPeriodEndpointFiltersByRange(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{{ID: 1, Username: "earth12", Status: "Active", Bandwidth: "17"}},
		payments: []PaymentJoin{
			{CustomerID: 1, AmountPaid: 1400, Month: 1, Year: 2026,
				PaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
			{CustomerID: 1, AmountPaid: 1400, Month: 2, Year: 2026,
				PaymentDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		},
	}
	router := newTestRouter(repo)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet,
		"/reports?start_date=2026-01-01&end_date=2026-01-31", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var report PeriodReportDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	require.Equal(t, 1, report.UserCount)
	require.Equal(t, 1400, report.TotalCollected)
}
