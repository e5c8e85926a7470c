package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurskurmanbekov/probation-monitor/module/core/domain"
	"github.com/nurskurmanbekov/probation-monitor/module/core/service"
)

type clientService interface {
	Register(ctx context.Context, fullName, deviceID string) (*domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetAll(ctx context.Context) ([]domain.Client, error)
}

type positionService interface {
	GetLatest(ctx context.Context, clientID string) (*domain.ClientPosition, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClientPosition, error)
}

type registerClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	DeviceID string `json:"device_id" binding:"required"`
}

type positionResponse struct {
	ClientID  string  `json:"client_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

type ClientHandler struct {
	clientSvc   clientService
	positionSvc positionService
}

func NewClientHandler(clientSvc clientService, positionSvc positionService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc, positionSvc: positionSvc}
}

func (h *ClientHandler) Register(r *gin.RouterGroup) {
	r.POST("/clients", h.RegisterClient)
	r.GET("/clients", h.GetAllClients)
	r.GET("/clients/:client_id", h.GetClient)
	r.GET("/clients/:client_id/position", h.GetLatestPosition)
	r.GET("/clients/:client_id/history", h.GetHistory)
}

func (h *ClientHandler) RegisterClient(c *gin.Context) {
	var req registerClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clientSvc.Register(c.Request.Context(), req.FullName, req.DeviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) GetAllClients(c *gin.Context) {
	clients, err := h.clientSvc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch clients"})
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientSvc.GetByID(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) GetLatestPosition(c *gin.Context) {
	cp, err := h.positionSvc.GetLatest(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no position for client"})
		return
	}

	c.JSON(http.StatusOK, toPositionResponse(cp))
}

func (h *ClientHandler) GetHistory(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		ClientID: c.Param("client_id"),
		Start:    time.Unix(start, 0),
		End:      time.Unix(end, 0),
	}

	positions, err := h.positionSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]positionResponse, len(positions))
	for i, cp := range positions {
		results[i] = toPositionResponse(&cp)
	}
	c.JSON(http.StatusOK, results)
}

func toPositionResponse(cp *domain.ClientPosition) positionResponse {
	return positionResponse{
		ClientID:  cp.ClientID,
		Latitude:  cp.Position.Lat,
		Longitude: cp.Position.Lon,
		Timestamp: cp.Position.Timestamp.Unix(),
	}
}
