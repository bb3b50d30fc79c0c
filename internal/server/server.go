package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"gridops/internal/api"
	"gridops/internal/config"
	"gridops/internal/source"
	"gridops/internal/store"
)

// Server is the HTTP server hosting the dashboard API.
type Server struct {
	router *gin.Engine
	store  *store.Store
	orch   *source.Orchestrator
	stop   chan struct{}
}

// NewServer wires storage, orchestrator and routes from the app config.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "gridops.db")

	uploadStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	orch := source.NewOrchestrator(uploadStore)

	s := &Server{
		router: gin.Default(),
		store:  uploadStore,
		orch:   orch,
		stop:   make(chan struct{}),
	}
	s.setupRoutes()

	if interval := cfg.Reconcile.PollInterval(); interval > 0 {
		go orch.Poll(interval, s.stop)
	}

	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	group := s.router.Group("/api")
	{
		api.NewHandler(s.store, s.orch).RegisterRoutes(group)
	}
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Shutdown stops the poller and closes storage.
func (s *Server) Shutdown() error {
	close(s.stop)
	return s.store.Close()
}
