package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/internal/pipeline"
)

type implServer struct {
	cfg         *config.Config
	pipeline    pipeline.Pipeline
	newReporter ReporterFactory
	slots       *slots
	router      *gin.Engine
	logger      logger.Logger
}

// New creates a Server. newReporter may be nil, in which case per-request
// API keys are ignored.
func New(cfg *config.Config, p pipeline.Pipeline, newReporter ReporterFactory, log logger.Logger) Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Warn(context.Background(), "Failed to set trusted proxies: %v", err)
	}

	s := &implServer{
		cfg:         cfg,
		pipeline:    p,
		newReporter: newReporter,
		slots:       newSlots(cfg.Performance.MaxConcurrent),
		router:      router,
		logger:      log,
	}

	router.Use(gin.Recovery(), s.requestLogger())
	s.initRouter()
	return s
}

func (s *implServer) Handler() http.Handler {
	return s.router
}
