package controller

import (
	"learnquest_backend/internal/service"
	"learnquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetOverview godoc
// @Summary Progress overview
// @Description XP, level, streak, counters and level progress for the current user
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Overview}
// @Router /api/progress [get]
func (c *ProgressController) GetOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.ProgressService.GetOverview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// GetBadges godoc
// @Summary Badge catalog with unlock state
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]gamification.BadgeView}
// @Router /api/progress/badges [get]
func (c *ProgressController) GetBadges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	badges, err := c.ProgressService.GetBadges(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// GetMissions godoc
// @Summary Today's daily missions
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]gamification.MissionView}
// @Router /api/progress/missions [get]
func (c *ProgressController) GetMissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	missions, err := c.ProgressService.GetMissions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, missions)
}

// Checkin godoc
// @Summary Daily check-in
// @Description Rolls the daily streak; idempotent within a calendar day
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ActivityOutcome}
// @Router /api/progress/checkin [post]
func (c *ProgressController) Checkin(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	outcome, err := c.ProgressService.Checkin(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}
