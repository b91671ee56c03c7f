package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/taifexpulse/internal/domain/dto"
	"github.com/guttosm/taifexpulse/internal/service"
)

// Handler provides HTTP handlers for the nearby-series endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Call the service layer for the nearby-contract series
//   - Translate results into response DTOs with appropriate status codes
type Handler struct {
	svc service.SeriesService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.SeriesService) *Handler {
	return &Handler{svc: svc}
}

// GetSeries handles GET /api/v1/series requests.
//
// Query Parameters:
//   - item_code (string, required): underlying symbol (e.g. "TX").
//   - start (string, optional): minimum bar date, YYYY-MM-DD.
//   - end (string, optional): maximum bar date, YYYY-MM-DD.
//
// GetSeries godoc
// @Summary      Get nearby-contract OHLCV series
// @Description  Returns the front-month daily series for the given item code
// @Tags         series
// @Accept       json
// @Produce      json
// @Param        item_code  query     string  true   "Underlying symbol" example(TX)
// @Param        start      query     string  false  "Start date in YYYY-MM-DD" example(2024-01-01)
// @Param        end        query     string  false  "End date in YYYY-MM-DD" example(2024-03-31)
// @Success      200        {object}  dto.SeriesResponse  "Success"
// @Failure      400        {object}  dto.ErrorResponse   "Bad Request"
// @Failure      404        {object}  dto.ErrorResponse   "Not Found"
// @Failure      500        {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/series [get]
func (h *Handler) GetSeries(c *gin.Context) {
	itemCode := strings.ToUpper(strings.TrimSpace(c.Query("item_code")))
	if itemCode == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("item_code is required", nil))
		return
	}

	parseDate := func(param string) (*time.Time, bool) {
		s := c.Query(param)
		if s == "" {
			return nil, true
		}
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid "+param+" format, expected YYYY-MM-DD", err))
			return nil, false
		}
		return &parsed, true
	}

	startDate, ok := parseDate("start")
	if !ok {
		return
	}
	endDate, ok := parseDate("end")
	if !ok {
		return
	}

	series, err := h.svc.GetNearbySeries(c.Request.Context(), itemCode, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch series", err))
		return
	}
	if len(series) == 0 {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", nil))
		return
	}

	resp := dto.SeriesResponse{ItemCode: itemCode, Bars: make([]dto.BarPoint, 0, len(series))}
	for _, b := range series {
		resp.Bars = append(resp.Bars, dto.BarPoint{
			Date:   b.Date.Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	c.JSON(http.StatusOK, resp)
}
