package controller

import (
	"signclass_backend/internal/service"
	"signclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	MediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// UploadVideo godoc
// @Summary Upload a video
// @Description Stores a lesson video or sign-practice recording, probes it and generates a thumbnail
// @Tags media
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "video file"
// @Success 201 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response
// @Router /api/media/videos [post]
func (c *MediaController) UploadVideo(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	result, err := c.MediaService.UploadVideo(ctx.Request.Context(), header, "videos")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, result)
}

// UploadImage godoc
// @Summary Upload an image
// @Description Stores an avatar or class cover image
// @Tags media
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "image file"
// @Success 201 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response
// @Router /api/media/images [post]
func (c *MediaController) UploadImage(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	result, err := c.MediaService.UploadImage(ctx.Request.Context(), header, "images")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, result)
}
