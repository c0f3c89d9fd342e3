package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pharmacare/showcase/internal/assistant"
	"github.com/pharmacare/showcase/internal/model"
)

// CatalogStore is the narrow store contract required by the HTTP API.
type CatalogStore interface {
	model.CatalogQuerier
	GetSchemaDescription() string
	ExecuteQuery(query string) ([]map[string]any, error)
	TableRowCounts() (map[string]int64, error)
}

// Assistant answers chat queries.
type Assistant interface {
	SubmitQuery(ctx context.Context, q assistant.Query) (assistant.Response, error)
}

// DefaultMaxUploadBytes limits image uploads.
const DefaultMaxUploadBytes = assistant.DefaultMaxImageBytes

// Server provides the catalog and assistant HTTP API.
type Server struct {
	addr           string
	store          CatalogStore
	bot            Assistant
	log            zerolog.Logger
	maxUploadBytes int64
	server         *http.Server
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// NewServer creates a new HTTP API server. maxUploadBytes <= 0 uses the default.
func NewServer(addr string, store CatalogStore, bot Assistant, log zerolog.Logger, maxUploadBytes int64) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:           addr,
		store:          store,
		bot:            bot,
		log:            log,
		maxUploadBytes: maxUploadBytes,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	s.registerRoutes(r)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()
	s.log.Info().Str("addr", listener.Addr().String()).Msg("HTTP API listening")

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.MaxMultipartMemory = s.maxUploadBytes

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/schema", s.handleSchema)
	api.POST("/query", s.handleQuery)

	api.GET("/categories", s.handleCategories)
	api.GET("/products", s.handleProducts)
	api.GET("/products/featured", s.handleFeatured)
	api.GET("/products/trending", s.handleTrending)
	api.GET("/products/discounted", s.handleDiscounted)
	api.GET("/products/:id", s.handleProduct)

	api.POST("/assistant/query", s.handleAssistantQuery)
	api.POST("/assistant/image", s.handleAssistantImage)
}
