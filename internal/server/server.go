// Package server exposes the validation pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rezonia/saft-validator/internal/processor"
	"github.com/rezonia/saft-validator/internal/signature"
	"github.com/rezonia/saft-validator/internal/validate"
)

// Config holds server configuration
type Config struct {
	Address       string
	PublicKeyPath string
	Validation    validate.Config
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	Debug         bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
	log      *logrus.Logger
}

// NewServer creates a new API server. The public key is loaded at startup;
// without one the pipeline degrades to structural validation with a
// warning on every signed document.
func NewServer(config *Config) (*Server, error) {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	log := logrus.New()

	opts := []processor.Option{
		processor.WithConfig(config.Validation),
		processor.WithLogger(log),
	}
	if config.PublicKeyPath != "" {
		key, err := signature.LoadPublicKeyFile(config.PublicKeyPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, processor.WithVerifier(signature.NewVerifier(key)))
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: processor.NewPipeline(opts...),
		log:      log,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/validate", s.handleValidate)
		v1.POST("/verify", s.handleVerify)
		v1.POST("/info", s.handleInfo)
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

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	result := s.pipeline.Process(ctx, body)
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{
		Company: result.AuditFile.Header.CompanyName,
		Period:  periodOf(result),
		Report:  result.Report,
	})
}

func (s *Server) handleVerify(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	result := s.pipeline.Verify(ctx, body)
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{
		Valid:     result.Report.Valid,
		Documents: result.Report.Documents,
		Warnings:  result.Report.Warnings,
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	af, err := s.pipeline.Parse(ctx, body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, InfoResponse{
		Company:        af.Header.CompanyName,
		TaxID:          af.Header.TaxRegistrationNumber,
		FiscalYear:     af.Header.FiscalYear,
		StartDate:      af.Header.StartDate.Format("2006-01-02"),
		EndDate:        af.Header.EndDate.Format("2006-01-02"),
		Invoices:       len(af.SourceDocuments.Invoices.Documents),
		StockMovements: len(af.SourceDocuments.StockMovements.Documents),
		WorkDocuments:  len(af.SourceDocuments.WorkDocuments.Documents),
		Payments:       len(af.SourceDocuments.Payments.Documents),
		Customers:      len(af.MasterFiles.Customers),
		Suppliers:      len(af.MasterFiles.Suppliers),
		Products:       len(af.MasterFiles.Products),
		TaxEntries:     len(af.MasterFiles.TaxTable),
	})
}

func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return nil, false
	}
	return body, true
}

func periodOf(result *processor.Result) string {
	h := result.AuditFile.Header
	return h.StartDate.Format("2006-01-02") + ".." + h.EndDate.Format("2006-01-02")
}
