// Package server exposes the conversion pipeline over HTTP: XML in, PDF or
// canonical-model JSON out. Batch policy (skip vs abort) stays with the
// caller; every request is one atomic conversion.
package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/facturatools/dte-processor/internal/format"
	"github.com/facturatools/dte-processor/internal/model"
	"github.com/facturatools/dte-processor/internal/parser"
	"github.com/facturatools/dte-processor/internal/render"
)

// DefaultMaxBodySize caps uploaded XML at 1 MiB.
const DefaultMaxBodySize = 1 << 20

// Config holds server configuration
type Config struct {
	Address      string
	Token        string
	MaxBodySize  int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	renderer *render.Renderer
}

// NewServer creates a new API server around an explicitly constructed
// renderer.
func NewServer(config *Config, renderer *render.Renderer) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   config,
		router:   router,
		renderer: renderer,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/", s.requireToken)
	{
		api.POST("/render", s.handleRender)
		api.POST("/parse", s.handleParse)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// requireToken enforces bearer auth when a token is configured.
func (s *Server) requireToken(c *gin.Context) {
	if s.config.Token == "" {
		return
	}

	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	if strings.TrimSpace(auth[len("Bearer "):]) != s.config.Token {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readXML(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxBodySize)
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "XML too large"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) handleParse(c *gin.Context) {
	body, ok := s.readXML(c)
	if !ok {
		return
	}

	doc, err := parser.Parse(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (s *Server) handleRender(c *gin.Context) {
	body, ok := s.readXML(c)
	if !ok {
		return
	}

	doc, err := parser.Parse(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	pdf, err := s.renderer.Render(doc)
	if err != nil {
		status := http.StatusInternalServerError
		var stampErr *model.StampError
		if errors.As(err, &stampErr) {
			// Missing or unencodable stamp is a document problem, not
			// a server one.
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	name := format.OutputFileName(doc, "pdf")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
