package controller

import (
	"signclass_backend/internal/model"
	"signclass_backend/internal/service"
	"signclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MetricsController struct {
	MetricsService *service.MetricsService
	ClassService   *service.ClassService
}

func NewMetricsController(metricsService *service.MetricsService, classService *service.ClassService) *MetricsController {
	return &MetricsController{
		MetricsService: metricsService,
		ClassService:   classService,
	}
}

// GetClassMetrics godoc
// @Summary Class dashboard metrics
// @Description Averages, enrollment, top students and the challenge leaderboard for one class
// @Tags metrics
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response{data=model.ClassMetrics}
// @Router /api/classes/{id}/metrics [get]
func (c *MetricsController) GetClassMetrics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID := util.MustParseUint(ctx.Param("id"))

	ok, err := c.ClassService.CanAccess(claims, classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		util.Forbidden(ctx)
		return
	}

	metrics, err := c.MetricsService.BuildClassMetrics(ctx.Request.Context(), classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, metrics)
}

// GetLeaderboard godoc
// @Summary Class challenge leaderboard
// @Tags metrics
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response{data=[]model.LeaderboardRank}
// @Router /api/classes/{id}/leaderboard [get]
func (c *MetricsController) GetLeaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID := util.MustParseUint(ctx.Param("id"))

	ok, err := c.ClassService.CanAccess(claims, classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		util.Forbidden(ctx)
		return
	}

	metrics, err := c.MetricsService.BuildClassMetrics(ctx.Request.Context(), classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if metrics.Leaderboard == nil {
		metrics.Leaderboard = []model.LeaderboardRank{}
	}
	util.Success(ctx, metrics.Leaderboard)
}

// GetPlatformMetrics godoc
// @Summary Platform-wide metrics
// @Tags metrics
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.PlatformMetrics}
// @Router /api/admin/metrics [get]
func (c *MetricsController) GetPlatformMetrics(ctx *gin.Context) {
	metrics, err := c.MetricsService.BuildPlatformMetrics(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, metrics)
}

// GetStudentOverview godoc
// @Summary Own cross-class overview
// @Tags metrics
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StudentOverview}
// @Router /api/students/me/overview [get]
func (c *MetricsController) GetStudentOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	overview, err := c.MetricsService.BuildStudentOverview(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
