package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboardUsecases "hotelops/internal/application/dashboard/usecases"
	"hotelops/internal/interfaces/http/handlers/testutil"
	"hotelops/internal/shared/errors"
)

func TestDashboardHandler_GetSummary(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockGetSummaryUC{result: &dashboardUsecases.SummaryResponse{
			TotalUsers:        4,
			ActiveTickets:     3,
			TotalRooms:        20,
			RoomsToClean:      5,
			HighPriorityRooms: 2,
		}}
		h := NewDashboardHandler(uc, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/dashboard/summary", nil)
		h.GetSummary(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got dashboardUsecases.SummaryResponse
		_, err := testutil.DecodeData(w, &got)
		require.NoError(t, err)
		assert.Equal(t, *uc.result, got)
	})

	t.Run("failure", func(t *testing.T) {
		uc := &mockGetSummaryUC{err: errors.NewInternalError("Failed to retrieve dashboard summary")}
		h := NewDashboardHandler(uc, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/dashboard/summary", nil)
		h.GetSummary(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("plain errors are masked", func(t *testing.T) {
		uc := &mockGetSummaryUC{err: fmt.Errorf("dial tcp: connection refused")}
		h := NewDashboardHandler(uc, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/dashboard/summary", nil)
		h.GetSummary(c)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Equal(t, "Internal server error occurred", resp.Error.Message)
	})
}
