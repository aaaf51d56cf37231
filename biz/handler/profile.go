package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/envprofile/biz/model/api"
	"github.com/yi-nology/envprofile/biz/service"
	"github.com/yi-nology/envprofile/pkg/common"
	"github.com/yi-nology/envprofile/pkg/profile"
)

var (
	errBodyTooLarge = errors.New("request body too large")
	errKeyMismatch  = errors.New("profile_key in body does not match the path")
	errBadBool      = errors.New("is_active must be true or false")
)

// ProfileHandler exposes the selected profile and the stored profile catalogue.
type ProfileHandler struct {
	service *service.Service
}

func NewProfileHandler(svc *service.Service) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// GetEnvironment serves the selected profile in the requested encoding.
// @router /api/v1/environment [GET]
func (h *ProfileHandler) GetEnvironment(ctx context.Context, c *app.RequestContext) {
	format, err := profile.ParseFormat(c.Query("format"))
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	active := h.service.Active(ctx)
	data, err := profile.Encode(active.Profile, format)
	if err != nil {
		WriteInternalError(c, err)
		return
	}
	c.Set(common.ProfileKeyAttr, active.ProfileKey)

	etag := common.ETag(data)
	c.Response.Header.Set("ETag", etag)
	c.Response.Header.Set("X-Profile", active.ProfileKey)
	if string(c.GetHeader("If-None-Match")) == etag {
		c.Status(consts.StatusNotModified)
		return
	}
	c.Data(consts.StatusOK, format.ContentType(), data)
}

// GetEndpoints returns the selected profile with its derived identity provider URLs.
// @router /api/v1/environment/endpoints [GET]
func (h *ProfileHandler) GetEndpoints(ctx context.Context, c *app.RequestContext) {
	active := h.service.Active(ctx)
	c.Set(common.ProfileKeyAttr, active.ProfileKey)
	RespondData(c, active)
}

// @router /api/v1/profiles [GET]
func (h *ProfileHandler) ListProfiles(ctx context.Context, c *app.RequestContext) {
	var isActive *bool
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			WriteBadRequest(c, errBadBool)
			return
		}
		isActive = &v
	}
	list, err := h.service.ListProfiles(ctx, isActive)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondData(c, map[string]any{"total": len(list), "list": list})
}

// @router /api/v1/profiles/:key [GET]
func (h *ProfileHandler) GetProfile(ctx context.Context, c *app.RequestContext) {
	item, err := h.service.GetProfile(ctx, c.Param("key"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondData(c, item)
}

// @router /api/v1/profiles [POST]
func (h *ProfileHandler) CreateProfile(ctx context.Context, c *app.RequestContext) {
	req, err := decodeProfileRequest(c)
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	item, err := h.service.AddProfile(ctx, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondData(c, item)
}

// @router /api/v1/profiles/:key [PUT]
func (h *ProfileHandler) UpdateProfile(ctx context.Context, c *app.RequestContext) {
	req, err := decodeProfileRequest(c)
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	key := c.Param("key")
	if req.ProfileKey != "" && strings.TrimSpace(req.ProfileKey) != key {
		WriteBadRequest(c, errKeyMismatch)
		return
	}
	req.ProfileKey = key
	item, err := h.service.UpdateProfile(ctx, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondData(c, item)
}

// @router /api/v1/profiles/:key [DELETE]
func (h *ProfileHandler) DeleteProfile(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeleteProfile(ctx, c.Param("key")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c)
}

// @router /api/v1/profiles/:key/publish [POST]
func (h *ProfileHandler) PublishProfile(ctx context.Context, c *app.RequestContext) {
	format, err := profile.ParseFormat(c.Query("format"))
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	pub, err := h.service.PublishProfile(ctx, c.Param("key"), format)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondData(c, pub)
}

// @router /api/v1/profiles/:key/publications [GET]
func (h *ProfileHandler) ListPublications(ctx context.Context, c *app.RequestContext) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteBadRequest(c, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}
	list, err := h.service.ListPublications(ctx, c.Param("key"), limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondData(c, map[string]any{"total": len(list), "list": list})
}

// GetPublished streams a published profile back from storage.
// @router /api/v1/published/:key/:file [GET]
func (h *ProfileHandler) GetPublished(ctx context.Context, c *app.RequestContext) {
	file, err := h.service.OpenPublished(ctx, c.Param("key"), c.Param("file"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteInternalError(c, err)
		return
	}
	c.Response.Header.Set("ETag", common.ETag(data))
	c.Data(consts.StatusOK, file.ContentType, data)
}

// profileRequestBody mirrors api.ProfileRequest but keeps the profile raw so
// it goes through the strict profile decoder.
type profileRequestBody struct {
	ProfileKey  string          `json:"profile_key"`
	Description string          `json:"description"`
	SortOrder   int32           `json:"sort_order"`
	IsActive    *bool           `json:"is_active"`
	Profile     json.RawMessage `json:"profile"`
}

func decodeProfileRequest(c *app.RequestContext) (*api.ProfileRequest, error) {
	body := c.Request.Body()
	if len(body) > MaxBodySize {
		return nil, errBodyTooLarge
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var raw profileRequestBody
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if len(raw.Profile) == 0 {
		return nil, fmt.Errorf("profile: %w", profile.ErrMissingField)
	}
	p, err := profile.Decode(raw.Profile, profile.FormatJSON)
	if err != nil {
		return nil, err
	}
	return &api.ProfileRequest{
		ProfileKey:  raw.ProfileKey,
		Description: raw.Description,
		SortOrder:   raw.SortOrder,
		IsActive:    raw.IsActive,
		Profile:     p,
	}, nil
}
