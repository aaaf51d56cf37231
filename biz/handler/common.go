package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/envprofile/biz/service"
	"github.com/yi-nology/envprofile/pkg/common"
	"github.com/yi-nology/envprofile/pkg/profile"
)

// MaxBodySize bounds profile write requests.
const MaxBodySize = 64 * 1024

var (
	AppVersion   = "dev"
	AppGitCommit = "unknown"
	AppBuildTime = "unknown"
)

// Ping answers liveness checks.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Msg: "pong"})
}

// GetVersion reports build information.
// @router /api/v1/version [GET]
func GetVersion(ctx context.Context, c *app.RequestContext) {
	RespondData(c, map[string]string{
		"version":    AppVersion,
		"git_commit": AppGitCommit,
		"build_time": AppBuildTime,
	})
}

func WriteBadRequest(c *app.RequestContext, err error) {
	RespondError(c, consts.StatusBadRequest, err)
}

func WriteInternalError(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code:  consts.StatusInternalServerError,
		Msg:   "internal error",
		Error: err.Error(),
	})
}

func WriteNotFound(c *app.RequestContext, err error) {
	RespondError(c, consts.StatusNotFound, err)
}

// --------------------- Response helpers ---------------------

func RespondOK(c *app.RequestContext) {
	resp := common.CommonResponse{}.ReturnOK()
	resp.Msg = http.StatusText(consts.StatusOK)
	c.JSON(consts.StatusOK, resp)
}

func RespondData(c *app.RequestContext, data any) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
		Data: data,
	})
}

func RespondError(c *app.RequestContext, status int, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code:  status,
		Msg:   msg,
		Error: msg,
	})
}

// RespondServiceError maps service errors onto response codes.
func RespondServiceError(c *app.RequestContext, err error) {
	switch status := statusFor(err); status {
	case consts.StatusInternalServerError:
		WriteInternalError(c, err)
	case consts.StatusNotFound:
		WriteNotFound(c, err)
	default:
		RespondError(c, status, err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrPublishedNotFound),
		errors.Is(err, profile.ErrUnknownProfile):
		return consts.StatusNotFound
	case errors.Is(err, service.ErrProfileKeyRequired),
		errors.Is(err, service.ErrInvalidProfileKey),
		errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrInvalidPublishName),
		errors.Is(err, profile.ErrUnsupportedFormat),
		errors.Is(err, profile.ErrMissingField):
		return consts.StatusBadRequest
	case errors.Is(err, service.ErrProfileKeyExists),
		errors.Is(err, service.ErrProfileReserved):
		return consts.StatusConflict
	case errors.Is(err, service.ErrStorageDisabled):
		return consts.StatusServiceUnavailable
	default:
		return consts.StatusInternalServerError
	}
}
