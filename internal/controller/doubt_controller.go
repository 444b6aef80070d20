package controller

import (
	"errors"
	"io"
	"learnquest_backend/internal/service"
	"learnquest_backend/internal/util"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 5 << 20 // 5 MiB

type DoubtController struct {
	DoubtService *service.DoubtService
}

func NewDoubtController(doubtService *service.DoubtService) *DoubtController {
	return &DoubtController{DoubtService: doubtService}
}

// CreateSession godoc
// @Summary Start a doubt session
// @Tags doubts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateSessionRequest true "session details"
// @Success 201 {object} util.Response{data=model.DoubtSession}
// @Router /api/doubts [post]
func (c *DoubtController) CreateSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.DoubtService.CreateSession(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// ListSessions godoc
// @Summary List doubt sessions
// @Tags doubts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.DoubtSession}
// @Router /api/doubts [get]
func (c *DoubtController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.DoubtService.ListSessions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// GetSession godoc
// @Summary Fetch a session and its messages
// @Tags doubts
// @Produce json
// @Security BearerAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/doubts/{id} [get]
func (c *DoubtController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	session, messages, err := c.DoubtService.GetSession(claims.UserID, sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"session": session, "messages": messages})
}

// DeleteSession godoc
// @Summary Delete a session
// @Tags doubts
// @Produce json
// @Security BearerAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/doubts/{id} [delete]
func (c *DoubtController) DeleteSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.DoubtService.DeleteSession(claims.UserID, sessionID); err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Ask godoc
// @Summary Ask the tutor
// @Description Blocking variant; returns the full answer in one response
// @Tags doubts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "session id"
// @Param body body service.AskRequest true "the question"
// @Success 200 {object} util.Response{data=service.AskResponse}
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/doubts/{id}/ask [post]
func (c *DoubtController) Ask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.DoubtService.Ask(claims.UserID, sessionID, req)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.Error(ctx, http.StatusBadGateway, "tutor request failed: "+err.Error())
		}
		return
	}
	util.Success(ctx, resp)
}

// AskStream godoc
// @Summary Ask the tutor (streaming)
// @Description Server-sent events; each event carries one content delta
// @Tags doubts
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path int true "session id"
// @Param body body service.AskRequest true "the question"
// @Router /api/doubts/{id}/ask/stream [post]
func (c *DoubtController) AskStream(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, errChan, err := c.DoubtService.AskStream(claims.UserID, sessionID, req)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	var full strings.Builder
	ctx.Stream(func(w io.Writer) bool {
		select {
		case chunk, open := <-out:
			if !open {
				ctx.SSEvent("done", "")
				return false
			}
			full.WriteString(chunk)
			ctx.SSEvent("message", chunk)
			return true
		case err := <-errChan:
			if err != nil {
				ctx.SSEvent("error", err.Error())
			}
			return false
		}
	})

	if full.Len() > 0 {
		if _, err := c.DoubtService.SaveAssistantMessage(claims.UserID, sessionID, full.String()); err != nil {
			util.LogInternalError(ctx, err)
		}
	}
}

// SubmitStep godoc
// @Summary Submit a solution step for grading
// @Tags doubts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "session id"
// @Param body body service.SubmitStepRequest true "the step"
// @Success 200 {object} util.Response{data=service.SubmitStepResponse}
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/doubts/{id}/steps [post]
func (c *DoubtController) SubmitStep(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.SubmitStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.DoubtService.SubmitStep(claims.UserID, sessionID, req)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.Error(ctx, http.StatusBadGateway, "step grading failed: "+err.Error())
		}
		return
	}
	util.Success(ctx, resp)
}

// ListSteps godoc
// @Summary List graded steps for a session
// @Tags doubts
// @Produce json
// @Security BearerAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=[]model.SolutionStep}
// @Router /api/doubts/{id}/steps [get]
func (c *DoubtController) ListSteps(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	steps, err := c.DoubtService.ListSteps(claims.UserID, sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, steps)
}

// UploadImage godoc
// @Summary Upload a problem photo
// @Description Stores the image and returns its URL for use in a question
// @Tags doubts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "image file"
// @Success 201 {object} util.Response{data=service.UploadImageResponse}
// @Router /api/doubts/upload [post]
func (c *DoubtController) UploadImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "missing image file")
		return
	}
	if header.Size > maxUploadSize {
		util.BadRequest(ctx, "image exceeds 5 MiB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		util.BadRequest(ctx, "file is not an image")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	resp, err := c.DoubtService.UploadImage(claims.UserID, header.Filename, data, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, resp)
}
