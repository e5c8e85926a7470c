package core

import (
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/handler/http"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/handler/subscriber"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/cache"
	redisCache "github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/cache/redis"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/database/postgres"
	"github.com/nurskurmanbekov/probation-monitor/module/core/internal/repository/publisher/rabbitmq"
	"github.com/nurskurmanbekov/probation-monitor/module/core/service"
)

type Module struct {
	ClientSvc    *service.ClientService
	PositionSvc  *service.PositionService
	GeoZoneSvc   *service.GeoZoneService
	ViolationSvc *service.ViolationService

	clientHandler  *http.ClientHandler
	geoZoneHandler *http.GeoZoneHandler
	subscriber     *subscriber.PositionSubscriber
}

// Build wires the core module. redisClient may be nil; the position service
// then runs without the latest-position cache.
func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, redisClient *goredis.Client) (*Module, error) {
	clientRepo := postgres.NewClientRepo(db)
	zoneRepo := postgres.NewGeoZoneRepo(db)
	violationRepo := postgres.NewViolationRepo(db)
	positionRepo := postgres.NewPositionRepo(db)

	notifier, err := rabbitmq.NewViolationNotifier(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("violation notifier: %w", err)
	}

	var posCache cache.PositionCache
	if redisClient != nil {
		posCache = redisCache.NewPositionCache(redisClient)
	}

	clientSvc := service.NewClientService(clientRepo)
	positionSvc := service.NewPositionService(positionRepo, posCache)
	zoneSvc := service.NewGeoZoneService(zoneRepo, clientRepo)
	violationSvc := service.NewViolationService(violationRepo, zoneRepo, clientRepo, notifier)

	clientHandler := http.NewClientHandler(clientSvc, positionSvc)
	geoZoneHandler := http.NewGeoZoneHandler(zoneSvc, violationSvc)
	sub := subscriber.NewPositionSubscriber(mqttClient, clientSvc, positionSvc, violationSvc)

	return &Module{
		ClientSvc:      clientSvc,
		PositionSvc:    positionSvc,
		GeoZoneSvc:     zoneSvc,
		ViolationSvc:   violationSvc,
		clientHandler:  clientHandler,
		geoZoneHandler: geoZoneHandler,
		subscriber:     sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.clientHandler.Register(r)
	m.geoZoneHandler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
