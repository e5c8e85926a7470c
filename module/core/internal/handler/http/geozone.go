package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/service"
)

type geoZoneService interface {
	Create(ctx context.Context, clientID, name string, polygon domain.Polygon) (*domain.GeoZone, error)
	Update(ctx context.Context, zoneID string, upd *domain.GeoZoneUpdate) (*domain.GeoZone, error)
	Delete(ctx context.Context, zoneID string) error
	ListAllForClient(ctx context.Context, clientID string) ([]domain.GeoZone, error)
	ListActiveForClient(ctx context.Context, clientID string) ([]domain.GeoZone, error)
}

type violationQueryService interface {
	ListForClient(ctx context.Context, clientID string) ([]domain.GeoZoneViolation, error)
	MarkNotificationSent(ctx context.Context, violationID string) error
}

type createZoneRequest struct {
	Name    string         `json:"name" binding:"required"`
	Polygon domain.Polygon `json:"polygon" binding:"required"`
}

type updateZoneRequest struct {
	Name     *string        `json:"name"`
	Polygon  domain.Polygon `json:"polygon"`
	IsActive *bool          `json:"is_active"`
}

type GeoZoneHandler struct {
	zoneSvc      geoZoneService
	violationSvc violationQueryService
}

func NewGeoZoneHandler(zoneSvc geoZoneService, violationSvc violationQueryService) *GeoZoneHandler {
	return &GeoZoneHandler{zoneSvc: zoneSvc, violationSvc: violationSvc}
}

func (h *GeoZoneHandler) Register(r *gin.RouterGroup) {
	r.POST("/clients/:client_id/geozones", h.CreateZone)
	r.GET("/clients/:client_id/geozones", h.ListZones)
	r.PATCH("/geozones/:zone_id", h.UpdateZone)
	r.DELETE("/geozones/:zone_id", h.DeleteZone)
	r.GET("/clients/:client_id/violations", h.ListViolations)
	r.PATCH("/violations/:violation_id/notified", h.MarkViolationNotified)
}

func (h *GeoZoneHandler) CreateZone(c *gin.Context) {
	var req createZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := h.zoneSvc.Create(c.Request.Context(), c.Param("client_id"), req.Name, req.Polygon)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create geozone"})
		return
	}

	c.JSON(http.StatusCreated, zone)
}

func (h *GeoZoneHandler) ListZones(c *gin.Context) {
	ctx := c.Request.Context()
	clientID := c.Param("client_id")

	var zones []domain.GeoZone
	var err error
	if c.Query("active") == "true" {
		zones, err = h.zoneSvc.ListActiveForClient(ctx, clientID)
	} else {
		zones, err = h.zoneSvc.ListAllForClient(ctx, clientID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch geozones"})
		return
	}

	c.JSON(http.StatusOK, zones)
}

func (h *GeoZoneHandler) UpdateZone(c *gin.Context) {
	var req updateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := &domain.GeoZoneUpdate{
		Name:     req.Name,
		Polygon:  req.Polygon,
		IsActive: req.IsActive,
	}
	zone, err := h.zoneSvc.Update(c.Request.Context(), c.Param("zone_id"), upd)
	if err != nil {
		if errors.Is(err, service.ErrZoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "geozone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update geozone"})
		return
	}

	c.JSON(http.StatusOK, zone)
}

func (h *GeoZoneHandler) DeleteZone(c *gin.Context) {
	if err := h.zoneSvc.Delete(c.Request.Context(), c.Param("zone_id")); err != nil {
		if errors.Is(err, service.ErrZoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "geozone not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete geozone"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GeoZoneHandler) ListViolations(c *gin.Context) {
	violations, err := h.violationSvc.ListForClient(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch violations"})
		return
	}

	c.JSON(http.StatusOK, violations)
}

func (h *GeoZoneHandler) MarkViolationNotified(c *gin.Context) {
	if err := h.violationSvc.MarkNotificationSent(c.Request.Context(), c.Param("violation_id")); err != nil {
		if errors.Is(err, service.ErrViolationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "violation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update violation"})
		return
	}

	c.Status(http.StatusNoContent)
}
