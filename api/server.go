package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/veriform/consent-api/consent"
	"github.com/veriform/consent-api/schema"
	"github.com/veriform/consent-api/store"
)

// consentService is the slice of consent.Service the handlers need; the
// indirection keeps handler tests hermetic.
type consentService interface {
	Verify(sub schema.ConsentSubmission, meta schema.ClientMeta) (*consent.VerifyResult, error)
	Check(fingerprint, policyVersion string) (*consent.CheckResult, error)
	Revoke(fingerprint, policyVersion string) (*consent.RevokeResult, error)
}

// Server serves the consent HTTP surface.
type Server struct {
	router *gin.Engine
	server *http.Server

	consent    consentService
	mongoStore store.MongoStore

	traceMode bool
}

func NewServer(consentService consentService, mongoStore store.MongoStore, traceMode bool) *Server {
	if !traceMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:     gin.New(),
		consent:    consentService,
		mongoStore: mongoStore,
		traceMode:  traceMode,
	}
	s.setupRouter()

	return s
}

func (s *Server) setupRouter() {
	r := s.router
	r.Use(gin.Recovery())
	r.Use(s.RequestID)
	r.Use(s.DumpRequest)

	api := r.Group("/api/consent")
	{
		api.POST("/verify", s.verifyConsent)
		api.GET("/check", s.checkConsent)
		api.POST("/revoke", s.revokeConsent)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", s.healthz)
}

// Run blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	log.WithFields(log.Fields{
		"prefix": "api",
		"addr":   addr,
	}).Info("consent api serving")

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.mongoStore.Ping(); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"checked": time.Now().UTC(),
	})
}
