package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/geography"
	domainidentity "github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/interfaces/http/middleware"
)

// GeographyHandler serves county, sub-county and village endpoints.
// Reference data is readable by any authenticated user; changing it is
// restricted to administrative roles.
type GeographyHandler struct {
	BaseHandler
	geo *geography.Service
}

// NewGeographyHandler creates a geography handler
func NewGeographyHandler(geo *geography.Service, logger *zap.Logger) *GeographyHandler {
	return &GeographyHandler{BaseHandler: NewBaseHandler(logger), geo: geo}
}

// RegisterRoutes registers geography routes
func (h *GeographyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := middleware.RequireRoles(domainidentity.RoleICTAdmin, domainidentity.RoleMEStaff)

	counties := rg.Group("/counties")
	{
		counties.GET("", h.ListCounties)
		counties.POST("", admin, h.CreateCounty)
		counties.GET("/:id/sub-counties", h.ListSubCounties)
	}

	rg.POST("/sub-counties", admin, h.CreateSubCounty)

	villages := rg.Group("/villages")
	{
		villages.GET("", h.ListVillages)
		villages.POST("", admin, h.CreateVillage)
		villages.GET("/:id", h.GetVillage)
		villages.PATCH("/:id", admin, h.UpdateVillage)
		villages.POST("/:id/qualified-households", h.RecordQualifiedHouseholds)
	}
}

// CreateCounty registers a county
func (h *GeographyHandler) CreateCounty(c *gin.Context) {
	var req geography.CreateCountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	county, err := h.geo.CreateCounty(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, county)
}

// ListCounties lists all counties
func (h *GeographyHandler) ListCounties(c *gin.Context) {
	counties, err := h.geo.ListCounties(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counties)
}

// CreateSubCounty registers a sub-county
func (h *GeographyHandler) CreateSubCounty(c *gin.Context) {
	var req geography.CreateSubCountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subCounty, err := h.geo.CreateSubCounty(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, subCounty)
}

// ListSubCounties lists sub-counties of a county
func (h *GeographyHandler) ListSubCounties(c *gin.Context) {
	countyID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	subCounties, err := h.geo.ListSubCounties(c.Request.Context(), countyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subCounties)
}

// CreateVillage registers a village
func (h *GeographyHandler) CreateVillage(c *gin.Context) {
	var req geography.CreateVillageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	village, err := h.geo.CreateVillage(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, village)
}

// GetVillage returns a single village
func (h *GeographyHandler) GetVillage(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	village, err := h.geo.GetVillage(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, village)
}

// UpdateVillage applies a partial update to a village
func (h *GeographyHandler) UpdateVillage(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req geography.UpdateVillageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	village, err := h.geo.UpdateVillage(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, village)
}

// ListVillages lists villages, optionally scoped to a sub-county or to
// designated program areas only
func (h *GeographyHandler) ListVillages(c *gin.Context) {
	var subCountyID *uuid.UUID
	if raw := c.Query("sub_county_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "sub_county_id must be a valid UUID")
			return
		}
		subCountyID = &id
	}
	programAreasOnly, _ := strconv.ParseBool(c.DefaultQuery("program_areas_only", "false"))

	villages, err := h.geo.ListVillages(c.Request.Context(), subCountyID, programAreasOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, villages)
}

type qualifiedHouseholdsRequest struct {
	Count int `json:"count" binding:"min=0"`
}

// RecordQualifiedHouseholds updates the count of households qualified for
// programs in a village
func (h *GeographyHandler) RecordQualifiedHouseholds(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req qualifiedHouseholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	village, err := h.geo.RecordQualifiedHouseholds(c.Request.Context(), id, req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, village)
}
