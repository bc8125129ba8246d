package delivery

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"salespulse/internal/domain"
	"salespulse/internal/usecase"
	"salespulse/pkg/logger"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	ingestService    *usecase.IngestService
	analyticsService *usecase.AnalyticsService
	logger           *logger.Logger
}

func NewHTTPHandlers(
	ingestService *usecase.IngestService,
	analyticsService *usecase.AnalyticsService,
	logger *logger.Logger,
) *HTTPHandlers {
	return &HTTPHandlers{
		ingestService:    ingestService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSales returns the full current snapshot.
func (h *HTTPHandlers) GetSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.Snapshot())
}

// GetRecentSales returns the won-deal ticker feed.
func (h *HTTPHandlers) GetRecentSales(c *gin.Context) {
	sales := h.analyticsService.RecentSales()
	if sales == nil {
		sales = []domain.WonSale{}
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// GetFacets returns the distinct filter values per facet.
func (h *HTTPHandlers) GetFacets(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.Facets())
}

// GetStats returns ranked per-agent stats for the requested period
// and filters.
func (h *HTTPHandlers) GetStats(c *gin.Context) {
	query, errMsg := parseStatsQuery(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      errMsg,
			"request_id": c.GetString("request_id"),
		})
		return
	}

	c.JSON(http.StatusOK, h.analyticsService.Stats(query))
}

// GetPodium returns the fixed-size top ranking for the requested
// period and filters.
func (h *HTTPHandlers) GetPodium(c *gin.Context) {
	query, errMsg := parseStatsQuery(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      errMsg,
			"request_id": c.GetString("request_id"),
		})
		return
	}

	result := h.analyticsService.Stats(query)
	c.JSON(http.StatusOK, gin.H{
		"podium":       result.Podium,
		"last_updated": result.LastUpdated,
		"loading":      result.Loading,
	})
}

// IngestRun triggers a refresh outside the schedule.
func (h *HTTPHandlers) IngestRun(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context())
	log.Info("Manual refresh requested")

	if err := h.ingestService.RunOnce(c.Request.Context()); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, usecase.ErrRefreshInProgress) {
			status = http.StatusConflict
		}
		log.WithError(err).Warn("Manual refresh failed")
		c.JSON(status, gin.H{
			"error":      err.Error(),
			"request_id": c.GetString("request_id"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Refresh completed",
		"request_id": c.GetString("request_id"),
	})
}

var periods = map[string]domain.Period{
	"today":     domain.PeriodToday,
	"yesterday": domain.PeriodYesterday,
	"last7":     domain.PeriodLast7,
	"last30":    domain.PeriodLast30,
	"custom":    domain.PeriodCustom,
	"week":      domain.PeriodWeek,
	"month":     domain.PeriodMonth,
	"year":      domain.PeriodYear,
}

func parseStatsQuery(c *gin.Context) (usecase.StatsQuery, string) {
	query := usecase.StatsQuery{
		Period: domain.PeriodMonth,
		Anchor: domain.AnchorRegistration,

		Agents:    c.QueryArray("agent"),
		Sources:   c.QueryArray("source"),
		Locations: c.QueryArray("location"),
		Statuses:  c.QueryArray("status"),
		Stages:    c.QueryArray("stage"),
		Solutions: c.QueryArray("solution"),
	}

	if raw := c.Query("period"); raw != "" {
		period, ok := periods[strings.ToLower(raw)]
		if !ok {
			return query, "Unknown period selector"
		}
		query.Period = period
	}

	switch strings.ToLower(c.Query("anchor")) {
	case "":
	case "registration":
		query.Anchor = domain.AnchorRegistration
	case "resolution":
		query.Anchor = domain.AnchorResolution
	default:
		return query, "Unknown anchor policy"
	}

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return query, "Invalid from date, expected YYYY-MM-DD"
		}
		query.CustomStart = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return query, "Invalid to date, expected YYYY-MM-DD"
		}
		query.CustomEnd = &t
	}

	return query, ""
}
