package controller

import (
	"errors"
	"net/http"
	"signclass_backend/internal/scoring"
	"signclass_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps service errors onto the response envelope. Policy
// violations are 403, conflicts 409, malformed payloads 400; anything
// unrecognized is logged and returned as 500.
func respondError(ctx *gin.Context, err error) {
	var validationErr *scoring.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, util.ErrResponseNotFound),
		errors.Is(err, util.ErrChallengeNotFound),
		errors.Is(err, util.ErrEvaluationNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrNotYetOpen),
		errors.Is(err, util.ErrExpired),
		errors.Is(err, util.ErrAttemptsExhausted),
		errors.Is(err, util.ErrNotEnrolled):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrReviewConflict),
		errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrUnknownType):
		util.BadRequest(ctx, err.Error())
	case errors.As(err, &validationErr):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
