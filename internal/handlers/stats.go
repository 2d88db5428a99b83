package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alimgiray/contribution-analyzer/internal/models"
	"github.com/alimgiray/contribution-analyzer/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ContributorStatsProvider computes or returns cached contributor stats
type ContributorStatsProvider interface {
	GetContributorStats(ctx context.Context, query models.StatsQuery) ([]models.ContributorStats, error)
}

type StatsHandler struct {
	statsService      ContributorStatsProvider
	exportService     *services.ExportService
	defaultSinceDays  int
	defaultMaxCommits int
}

func NewStatsHandler(statsService ContributorStatsProvider, exportService *services.ExportService, defaultSinceDays, defaultMaxCommits int) *StatsHandler {
	return &StatsHandler{
		statsService:      statsService,
		exportService:     exportService,
		defaultSinceDays:  defaultSinceDays,
		defaultMaxCommits: defaultMaxCommits,
	}
}

// GetStats returns the scored contributors of a repository;
// ?view=summary returns only feature and bugfix counts instead of the full breakdown
func (h *StatsHandler) GetStats(c *gin.Context) {
	query, err := h.parseQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.statsService.GetContributorStats(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("view") == "summary" {
		c.JSON(http.StatusOK, services.Summarize(stats))
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportStats serves the same result as GetStats as an XLSX workbook
func (h *StatsHandler) ExportStats(c *gin.Context) {
	query, err := h.parseQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.statsService.GetContributorStats(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := h.exportService.ExportXLSX(stats)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("contributors-%s-%s.xlsx", query.Owner, query.Repo)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *StatsHandler) parseQuery(c *gin.Context) (models.StatsQuery, error) {
	sinceDays, err := intQuery(c, "sinceDays", h.defaultSinceDays)
	if err != nil {
		return models.StatsQuery{}, err
	}

	maxCommits, err := intQuery(c, "maxCommits", h.defaultMaxCommits)
	if err != nil {
		return models.StatsQuery{}, err
	}

	query := models.StatsQuery{
		Owner:      c.Param("owner"),
		Repo:       c.Param("repo"),
		SinceDays:  sinceDays,
		MaxCommits: maxCommits,
	}
	if err := query.Validate(); err != nil {
		return models.StatsQuery{}, err
	}

	return query, nil
}

func intQuery(c *gin.Context, key string, defaultValue int) (int, error) {
	raw, exists := c.GetQuery(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.ValidationError{Field: key, Message: fmt.Sprintf("%s must be an integer", key)}
	}
	return value, nil
}
