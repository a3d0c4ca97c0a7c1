// Package api exposes the registry operations and read queries over
// HTTP.
package api

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	cfg "github.com/shenzhen-arrom/kitties/config"
	"github.com/shenzhen-arrom/kitties/kitty"
)

const logModule = "api"

type Server struct {
	cfg      *cfg.Config
	registry *kitty.Registry
	engine   *gin.Engine
}

func NewServer(registry *kitty.Registry, config *cfg.Config) *Server {
	server := &Server{
		cfg:      config,
		registry: registry,
	}
	gin.SetMode(gin.ReleaseMode)
	server.setupRouter()
	return server
}

func (s *Server) setupRouter() {
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	v1.POST("/kitties/create", s.Create)
	v1.POST("/kitties/transfer", s.Transfer)
	v1.POST("/kitties/breed", s.Breed)
	v1.POST("/kitties/sell", s.Sell)
	v1.POST("/kitties/buy", s.Buy)

	v1.GET("/kitties/count", s.Count)
	v1.GET("/kitties/:id", s.GetKitty)
	v1.GET("/kitties/:id/owner", s.GetOwner)
	v1.GET("/kitties/:id/listing", s.GetListing)

	s.engine = r
}

func (s *Server) Run() {
	log.WithFields(log.Fields{"module": logModule, "addr": s.cfg.ApiAddr}).Info("serving registry api")
	if err := s.engine.Run(s.cfg.ApiAddr); err != nil {
		log.WithFields(log.Fields{"module": logModule, "err": err}).Fatal("api server exited")
	}
}
