package controllers

import (
	"context"
	"net/http"

	"dashformance/leads-api/internal/dto"

	"github.com/gin-gonic/gin"
)

// StatsProvider computes dashboard statistics
type StatsProvider interface {
	Overview(ctx context.Context) (*dto.StatsOverview, error)
	Funnel(ctx context.Context) ([]dto.FunnelStage, error)
	Timeline(ctx context.Context, days int) ([]dto.TimelinePoint, error)
	Performance(ctx context.Context) (map[string]dto.OwnerPerformance, error)
	Geo(ctx context.Context) (*dto.GeoStats, error)
	SalesForce(ctx context.Context) (map[string]dto.SalesForceStats, error)
}

// StatsController serves the dashboard statistics
type StatsController struct {
	stats StatsProvider
}

// NewStatsController creates a new StatsController instance
func NewStatsController(stats StatsProvider) *StatsController {
	return &StatsController{stats: stats}
}

// Overview godoc
// @Summary      Lead overview
// @Tags         stats
// @Produce      json
// @Success      200 {object} dto.StatsOverview
// @Router       /leads/stats/overview [get]
func (ctrl *StatsController) Overview(c *gin.Context) {
	v, err := ctrl.stats.Overview(c.Request.Context())
	writeResult(c, v, err)
}

// Funnel godoc
// @Summary      Conversion funnel
// @Tags         stats
// @Produce      json
// @Success      200 {array} dto.FunnelStage
// @Router       /leads/stats/funnel [get]
func (ctrl *StatsController) Funnel(c *gin.Context) {
	v, err := ctrl.stats.Funnel(c.Request.Context())
	writeResult(c, v, err)
}

// Timeline godoc
// @Summary      Leads added and won per day
// @Tags         stats
// @Produce      json
// @Param        days query int false "Number of days (default 30)"
// @Success      200 {array} dto.TimelinePoint
// @Failure      400 {object} dto.APIError
// @Router       /leads/stats/timeline [get]
func (ctrl *StatsController) Timeline(c *gin.Context) {
	days, err := queryInt(c, "days", 30)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	points, err := ctrl.stats.Timeline(c.Request.Context(), days)
	writeResult(c, points, err)
}

// Performance godoc
// @Summary      Performance per owner
// @Tags         stats
// @Produce      json
// @Success      200 {object} map[string]dto.OwnerPerformance
// @Router       /leads/stats/performance [get]
func (ctrl *StatsController) Performance(c *gin.Context) {
	v, err := ctrl.stats.Performance(c.Request.Context())
	writeResult(c, v, err)
}

// Geo godoc
// @Summary      Leads per region
// @Tags         stats
// @Produce      json
// @Success      200 {object} dto.GeoStats
// @Router       /leads/stats/geo [get]
func (ctrl *StatsController) Geo(c *gin.Context) {
	v, err := ctrl.stats.Geo(c.Request.Context())
	writeResult(c, v, err)
}

// SalesForce godoc
// @Summary      Activity board per owner
// @Tags         stats
// @Produce      json
// @Success      200 {object} map[string]dto.SalesForceStats
// @Router       /leads/stats/salesforce [get]
func (ctrl *StatsController) SalesForce(c *gin.Context) {
	v, err := ctrl.stats.SalesForce(c.Request.Context())
	writeResult(c, v, err)
}

// writeResult writes v as 200 JSON, or err as an error envelope
func writeResult[T any](c *gin.Context, v T, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
