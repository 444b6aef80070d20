package controller

import (
	"errors"
	"learnquest_backend/internal/service"
	"learnquest_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StudyPlanController struct {
	StudyPlanService *service.StudyPlanService
}

func NewStudyPlanController(studyPlanService *service.StudyPlanService) *StudyPlanController {
	return &StudyPlanController{StudyPlanService: studyPlanService}
}

// CreatePlan godoc
// @Summary Generate a study plan
// @Description Asks the AI for a day-by-day schedule toward the goal
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreatePlanRequest true "goal and constraints"
// @Success 201 {object} util.Response{data=service.CreatePlanResponse}
// @Failure 502 {object} util.Response
// @Router /api/plans [post]
func (c *StudyPlanController) CreatePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.StudyPlanService.CreatePlan(claims.UserID, req)
	if err != nil {
		util.Error(ctx, http.StatusBadGateway, "plan generation failed: "+err.Error())
		return
	}
	util.Created(ctx, resp)
}

// ListPlans godoc
// @Summary List study plans
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StudyPlan}
// @Router /api/plans [get]
func (c *StudyPlanController) ListPlans(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plans, err := c.StudyPlanService.ListPlans(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// GetPlan godoc
// @Summary Fetch one study plan
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "plan id"
// @Success 200 {object} util.Response{data=service.StudyPlanView}
// @Failure 404 {object} util.Response
// @Router /api/plans/{id} [get]
func (c *StudyPlanController) GetPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	planID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	plan, err := c.StudyPlanService.GetPlan(claims.UserID, planID)
	if err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, plan)
}

// DeletePlan godoc
// @Summary Delete a study plan
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "plan id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/plans/{id} [delete]
func (c *StudyPlanController) DeletePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	planID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.StudyPlanService.DeletePlan(claims.UserID, planID); err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
