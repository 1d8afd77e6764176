package util

import (
	"net/http"

	constant "github.com/SeakMengs/DocSign/internal/constant"
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every non-document reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func BuildResponseSuccess(data any) Response {
	return Response{
		Success: true,
		Message: constant.REQUEST_SUCCESSFUL,
		Data:    data,
	}
}

func ResponseSuccess(ctx *gin.Context, data any) {
	if data == nil {
		data = gin.H{}
	}

	ctx.JSON(http.StatusOK, BuildResponseSuccess(data))
	ctx.Abort()
}

// BuildResponseFailed accepts errs as []ApiError, a plain error or nil.
func BuildResponseFailed(message string, errs any, data any) Response {
	if message == "" {
		message = constant.REQUEST_UNSUCCESSFUL
	}

	switch e := errs.(type) {
	case nil:
		errs = []ApiError{}
	case error:
		errs = GenerateErrorMessages(e)
	}

	if data == nil {
		data = gin.H{}
	}

	return Response{
		Success: false,
		Message: message,
		Errors:  errs,
		Data:    data,
	}
}

func ResponseFailed(ctx *gin.Context, code int, message string, errs any, data any) {
	ctx.JSON(code, BuildResponseFailed(message, errs, data))
	ctx.Abort()
}
