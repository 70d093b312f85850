package controller

import (
	"signclass_backend/internal/service"
	"signclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
	ClassService  *service.ClassService
}

func NewLessonController(lessonService *service.LessonService, classService *service.ClassService) *LessonController {
	return &LessonController{
		LessonService: lessonService,
		ClassService:  classService,
	}
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.LessonRequest true "lesson details"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Create(claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Param   body body service.LessonRequest true "lesson details"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.LessonService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListLessons godoc
// @Summary List lessons of a class
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/classes/{id}/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
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

	lessons, err := c.LessonService.ListByClass(classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// CreateActivity godoc
// @Summary Create an activity inside a lesson
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ActivityRequest true "activity details"
// @Success 201 {object} util.Response{data=model.Activity}
// @Router /api/activities [post]
func (c *LessonController) CreateActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.LessonService.CreateActivity(claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, activity)
}

// UpdateActivity godoc
// @Summary Update an activity
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "activity id"
// @Param   body body service.ActivityRequest true "activity details"
// @Success 200 {object} util.Response{data=model.Activity}
// @Router /api/activities/{id} [put]
func (c *LessonController) UpdateActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.LessonService.UpdateActivity(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "activity id"
// @Success 200 {object} util.Response
// @Router /api/activities/{id} [delete]
func (c *LessonController) DeleteActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.LessonService.DeleteActivity(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListActivities godoc
// @Summary List activities of a lesson
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Success 200 {object} util.Response{data=[]model.Activity}
// @Router /api/lessons/{id}/activities [get]
func (c *LessonController) ListActivities(ctx *gin.Context) {
	activities, err := c.LessonService.ListActivities(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, activities)
}

type ProgressRequest struct {
	Completed bool `json:"completed"`
}

// MarkProgress godoc
// @Summary Mark lesson progress
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "lesson id"
// @Param   body body ProgressRequest true "completion flag"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/progress [put]
func (c *LessonController) MarkProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.LessonService.MarkProgress(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Completed); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetClassProgress godoc
// @Summary Own progress across a class
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response{data=service.ClassProgress}
// @Router /api/classes/{id}/progress [get]
func (c *LessonController) GetClassProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.LessonService.ClassProgress(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
