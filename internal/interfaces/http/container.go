package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hotelops/internal/application/agent"
	"hotelops/internal/application/mutation"
	"hotelops/internal/domain/shared/events"
	"hotelops/internal/infrastructure/config"
	"hotelops/internal/infrastructure/messaging"
	"hotelops/internal/infrastructure/ratelimit"
	"hotelops/internal/infrastructure/store"
	"hotelops/internal/shared/logger"
)

// Container holds the infrastructure, repositories, use cases and handlers
// of one server process, and tears them down again in Shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface

	store       store.Store
	redis       *redis.Client
	rateLimiter ratelimit.RateLimiter
	dispatcher  *events.InMemoryEventDispatcher
	amqp        *messaging.AMQPPublisher

	mutations *mutation.Service
	agent     *agent.Agent

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers
}

// NewContainer wires every component. db is required when the store backend
// is gorm and ignored otherwise.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: store, Redis and event delivery
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: repositories over the selected store
	c.initRepositories()

	// Section 3: mutation protocol and the query agent
	if err := c.initServices(); err != nil {
		c.Shutdown(context.Background())
		return nil, err
	}

	// Section 4: read use cases and HTTP handlers
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	switch c.cfg.Store.Backend {
	case "gorm":
		if c.db == nil {
			return fmt.Errorf("store backend gorm requires a database connection")
		}
		s, err := store.NewGorm(c.db, modelsForStore(), c.log)
		if err != nil {
			return fmt.Errorf("failed to create gorm store: %w", err)
		}
		c.store = s
	case "postgrest", "":
		c.store = store.NewPostgREST(&c.cfg.Store, c.log)
	default:
		return fmt.Errorf("unknown store backend %q", c.cfg.Store.Backend)
	}
	c.log.Infow("entity store ready", "backend", c.cfg.Store.Backend)

	if c.cfg.RateLimit.Enabled || c.cfg.Events.Enabled {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     c.cfg.Redis.GetAddr(),
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := c.redis.Ping(ctx).Err(); err != nil {
			c.log.Warnw("redis unreachable, rate limiting fails open", "addr", c.cfg.Redis.GetAddr(), "error", err)
		}
	}
	if c.cfg.RateLimit.Enabled {
		c.rateLimiter = ratelimit.NewRedisRateLimiter(c.redis)
	}

	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, c.log.Named("events"))
	if err := c.dispatcher.Subscribe(events.Wildcard, messaging.NewLogHandler(c.log)); err != nil {
		return err
	}
	if c.cfg.Events.Enabled {
		c.amqp = messaging.NewAMQPPublisher(&c.cfg.Events, c.log)
		if err := c.dispatcher.Subscribe(events.Wildcard, c.amqp); err != nil {
			return err
		}
		if err := c.dispatcher.Subscribe(events.Wildcard, messaging.NewRedisEventBus(c.redis, c.log)); err != nil {
			return err
		}
	}
	return c.dispatcher.Start()
}

// Shutdown stops the event dispatcher after draining it and closes the
// broker and Redis connections.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error
	if c.dispatcher != nil {
		if err := c.dispatcher.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.amqp != nil {
		if err := c.amqp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close amqp publisher: %w", err))
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
