package controller

import (
	"signclass_backend/internal/model"
	"signclass_backend/internal/service"
	"signclass_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	EvaluationService *service.EvaluationService
}

func NewEvaluationController(evaluationService *service.EvaluationService) *EvaluationController {
	return &EvaluationController{EvaluationService: evaluationService}
}

// CreateEvaluation godoc
// @Summary Create an evaluation
// @Description Attaches a typed, auto- or manually-graded exercise to an activity
// @Tags evaluations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.EvaluationRequest true "evaluation details"
// @Success 201 {object} util.Response{data=model.Evaluation}
// @Failure 400 {object} util.Response
// @Router /api/evaluations [post]
func (c *EvaluationController) CreateEvaluation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eval, err := c.EvaluationService.Create(claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, eval)
}

// UpdateEvaluation godoc
// @Summary Update an evaluation
// @Tags evaluations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "evaluation id"
// @Param   body body service.EvaluationRequest true "evaluation details"
// @Success 200 {object} util.Response{data=model.Evaluation}
// @Router /api/evaluations/{id} [put]
func (c *EvaluationController) UpdateEvaluation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eval, err := c.EvaluationService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, eval)
}

// DeleteEvaluation godoc
// @Summary Delete an evaluation
// @Tags evaluations
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "evaluation id"
// @Success 200 {object} util.Response
// @Router /api/evaluations/{id} [delete]
func (c *EvaluationController) DeleteEvaluation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.EvaluationService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetEvaluation godoc
// @Summary Get an evaluation
// @Description Students receive the payload without answer keys
// @Tags evaluations
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "evaluation id"
// @Success 200 {object} util.Response
// @Router /api/evaluations/{id} [get]
func (c *EvaluationController) GetEvaluation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if claims.Role == model.Student {
		view, err := c.EvaluationService.GetForStudent(claims.UserID, id)
		if err != nil {
			respondError(ctx, err)
			return
		}
		util.Success(ctx, view)
		return
	}

	eval, err := c.EvaluationService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, eval)
}

// ListEvaluations godoc
// @Summary List evaluations of an activity
// @Tags evaluations
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "activity id"
// @Success 200 {object} util.Response{data=[]model.Evaluation}
// @Router /api/activities/{id}/evaluations [get]
func (c *EvaluationController) ListEvaluations(ctx *gin.Context) {
	evals, err := c.EvaluationService.ListByActivity(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, evals)
}

// MyEvaluations godoc
// @Summary List own evaluations
// @Tags evaluations
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "page" default(1)
// @Param   limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/evaluations [get]
func (c *EvaluationController) MyEvaluations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	evals, total, err := c.EvaluationService.ListMine(claims.UserID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  evals,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// SubmitEvaluation godoc
// @Summary Submit answers
// @Description Scores auto-gradable types server-side and enforces the attempt policy
// @Tags evaluations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "evaluation id"
// @Param   body body service.SubmissionRequest true "answers"
// @Success 201 {object} util.Response{data=service.SubmissionResult}
// @Failure 403 {object} util.Response "window closed or attempts exhausted"
// @Router /api/evaluations/{id}/submit [post]
func (c *EvaluationController) SubmitEvaluation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EvaluationService.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// MyResponses godoc
// @Summary Own responses for an evaluation
// @Tags evaluations
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "evaluation id"
// @Success 200 {object} util.Response{data=[]model.EvaluationResponse}
// @Router /api/evaluations/{id}/my-responses [get]
func (c *EvaluationController) MyResponses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	responses, err := c.EvaluationService.MyResponses(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, responses)
}

// ListResponses godoc
// @Summary All responses for an evaluation
// @Tags evaluations
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "evaluation id"
// @Success 200 {object} util.Response{data=[]model.EvaluationResponse}
// @Router /api/evaluations/{id}/responses [get]
func (c *EvaluationController) ListResponses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	responses, err := c.EvaluationService.Responses(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, responses)
}

// GetResponse godoc
// @Summary Get a single response
// @Tags evaluations
// @Produce  json
// @Security ApiKeyAuth
// @Param   responseId path string true "response id"
// @Success 200 {object} util.Response{data=model.EvaluationResponse}
// @Router /api/evaluations/responses/{responseId} [get]
func (c *EvaluationController) GetResponse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	response, err := c.EvaluationService.Response(claims.UserID, ctx.Param("responseId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, response)
}
