package controller

import (
	"signclass_backend/internal/service"
	"signclass_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
	ClassService     *service.ClassService
}

func NewChallengeController(challengeService *service.ChallengeService, classService *service.ClassService) *ChallengeController {
	return &ChallengeController{
		ChallengeService: challengeService,
		ClassService:     classService,
	}
}

// CreateChallenge godoc
// @Summary Create a class challenge
// @Description A challenge is a class-wide exercise with an optional rubric and max score
// @Tags challenges
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ChallengeRequest true "challenge details"
// @Success 201 {object} util.Response{data=model.Challenge}
// @Router /api/challenges [post]
func (c *ChallengeController) CreateChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.Create(claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, challenge)
}

// UpdateChallenge godoc
// @Summary Update a challenge
// @Tags challenges
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Param   body body service.ChallengeRequest true "challenge details"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Router /api/challenges/{id} [put]
func (c *ChallengeController) UpdateChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

// DeleteChallenge godoc
// @Summary Delete a challenge
// @Tags challenges
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id} [delete]
func (c *ChallengeController) DeleteChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ChallengeService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListChallenges godoc
// @Summary List challenges of a class
// @Tags challenges
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response{data=[]model.Challenge}
// @Router /api/classes/{id}/challenges [get]
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
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

	challenges, err := c.ChallengeService.ListByClass(classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// SubmitChallenge godoc
// @Summary Submit a challenge attempt
// @Tags challenges
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Param   body body service.ChallengeSubmission true "answers"
// @Success 201 {object} util.Response{data=service.ChallengeSubmissionResult}
// @Failure 403 {object} util.Response "window closed or attempts exhausted"
// @Router /api/challenges/{id}/submit [post]
func (c *ChallengeController) SubmitChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ChallengeSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ChallengeService.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ReviewResponse godoc
// @Summary Review a challenge response
// @Description Grades a pending response, optionally from per-criterion rubric scores
// @Tags challenges
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   responseId path string true "response id"
// @Param   body body service.ReviewRequest true "review"
// @Success 200 {object} util.Response{data=model.ChallengeResponse}
// @Failure 409 {object} util.Response "reviewed concurrently"
// @Router /api/challenges/responses/{responseId}/review [put]
func (c *ChallengeController) ReviewResponse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ChallengeService.Review(claims.UserID, ctx.Param("responseId"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// MyChallengeResponses godoc
// @Summary Own responses for a challenge
// @Tags challenges
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Success 200 {object} util.Response{data=[]model.ChallengeResponse}
// @Router /api/challenges/{id}/my-responses [get]
func (c *ChallengeController) MyChallengeResponses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	responses, err := c.ChallengeService.MyResponses(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, responses)
}

// ListChallengeResponses godoc
// @Summary All responses for a challenge
// @Tags challenges
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "challenge id"
// @Success 200 {object} util.Response{data=[]model.ChallengeResponse}
// @Router /api/challenges/{id}/responses [get]
func (c *ChallengeController) ListChallengeResponses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	responses, err := c.ChallengeService.Responses(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, responses)
}

// PendingReviews godoc
// @Summary Responses waiting for review
// @Tags challenges
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "page" default(1)
// @Param   limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/challenges/pending-reviews [get]
func (c *ChallengeController) PendingReviews(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	responses, total, err := c.ChallengeService.PendingReviews(claims.UserID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  responses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
