package controller

import (
	"signclass_backend/internal/model"
	"signclass_backend/internal/service"
	"signclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

// CreateClass godoc
// @Summary Create a class
// @Tags classes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ClassRequest true "class details"
// @Success 201 {object} util.Response{data=model.Class}
// @Router /api/classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.ClassService.Create(claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, class)
}

// UpdateClass godoc
// @Summary Update a class
// @Tags classes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Param   body body service.ClassRequest true "class details"
// @Success 200 {object} util.Response{data=model.Class}
// @Router /api/classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.ClassService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, class)
}

// DeleteClass godoc
// @Summary Delete a class
// @Tags classes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response
// @Router /api/classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ClassService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetClass godoc
// @Summary Get one class
// @Tags classes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response{data=model.Class}
// @Router /api/classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
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

	class, err := c.ClassService.Get(classID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, class)
}

// ListClasses godoc
// @Summary List own classes
// @Description Teachers see classes they own, students the ones they joined
// @Tags classes
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Class}
// @Router /api/classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var classes []model.Class
	var err error
	if claims.Role == model.Teacher || claims.Role == model.Admin {
		classes, err = c.ClassService.ListForTeacher(claims.UserID)
	} else {
		classes, err = c.ClassService.ListForStudent(claims.UserID)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, classes)
}

type JoinClassRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

// JoinClass godoc
// @Summary Join a class with an invite code
// @Tags classes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body JoinClassRequest true "invite code"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 409 {object} util.Response
// @Router /api/classes/join [post]
func (c *ClassController) JoinClass(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req JoinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.ClassService.Join(claims.UserID, req.InviteCode)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, class)
}

// LeaveClass godoc
// @Summary Leave a class
// @Tags classes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response
// @Router /api/classes/{id}/leave [post]
func (c *ClassController) LeaveClass(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ClassService.Leave(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RemoveStudent godoc
// @Summary Remove a student from the roster
// @Tags classes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Param   studentId path int true "student id"
// @Success 200 {object} util.Response
// @Router /api/classes/{id}/students/{studentId} [delete]
func (c *ClassController) RemoveStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.ClassService.RemoveStudent(
		claims.UserID,
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("studentId")),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetRoster godoc
// @Summary List enrolled students
// @Tags classes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "class id"
// @Success 200 {object} util.Response{data=[]model.ClassEnrollment}
// @Router /api/classes/{id}/students [get]
func (c *ClassController) GetRoster(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	roster, err := c.ClassService.Roster(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, roster)
}
