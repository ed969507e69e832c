package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/internal/model"
	"github.com/nguyentantai21042004/speech-coach/internal/pipeline"
)

// analyzeResponse is the body of a successful POST /analyze.
type analyzeResponse struct {
	Transcript string          `json:"transcript"`
	Language   string          `json:"language"`
	Segments   []model.Segment `json:"segments"`
	Metrics    model.Metrics   `json:"metrics"`
	Report     model.Report    `json:"report"`
	Degraded   bool            `json:"degraded"`
}

type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

func (s *implServer) initRouter() {
	s.router.GET("/health", s.health)
	s.router.POST("/analyze", s.analyze)
}

func (s *implServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"busy":     s.slots.busy(),
		"capacity": s.slots.capacity(),
	})
}

func (s *implServer) analyze(c *gin.Context) {
	ctx := logger.WithRunID(c.Request.Context(), uuid.NewString())

	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "No audio file part"})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "No selected file"})
		return
	}

	modelSize := strings.TrimSpace(c.PostForm("model_size"))
	if modelSize == "" {
		modelSize = s.cfg.Server.DefaultModelSize
	}
	if !config.IsModelSize(modelSize) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown model_size " + modelSize})
		return
	}

	language := strings.TrimSpace(c.PostForm("language"))
	if strings.EqualFold(language, "auto") {
		language = ""
	}

	opts := pipeline.Options{Language: language, ModelSize: modelSize}
	if key := strings.TrimSpace(c.PostForm("api_key")); key != "" && s.newReporter != nil {
		opts.Reporter = s.newReporter(ctx, key)
	}

	if err := os.MkdirAll(s.cfg.Server.UploadDir, 0755); err != nil {
		s.logger.Error(ctx, "Failed to create upload dir: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "upload storage unavailable"})
		return
	}
	uploadPath := filepath.Join(s.cfg.Server.UploadDir, uuid.NewString()+uploadExt(file.Filename))
	if err := c.SaveUploadedFile(file, uploadPath); err != nil {
		s.logger.Error(ctx, "Failed to save upload: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to store upload"})
		return
	}
	defer s.removeUpload(ctx, uploadPath)

	if err := s.slots.acquire(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "request cancelled while waiting for a free worker"})
		return
	}
	defer s.slots.release()

	res, err := s.pipeline.Run(ctx, uploadPath, opts)
	if err != nil {
		s.logger.Error(ctx, "Error executing pipeline: %v", err)
		status, stage := statusFor(err)
		c.JSON(status, errorResponse{Error: err.Error(), Stage: stage})
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{
		Transcript: res.Transcript.Text,
		Language:   res.Transcript.Language,
		Segments:   res.Transcript.Segments,
		Metrics:    model.Metrics{Acoustic: res.Acoustic, Text: res.Text},
		Report:     res.Report,
		Degraded:   res.Degraded,
	})
}

func statusFor(err error) (int, string) {
	var se *pipeline.StageError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError, ""
	}
	switch se.Stage {
	case pipeline.StageInput:
		return http.StatusBadRequest, string(se.Stage)
	case pipeline.StageDecode:
		return http.StatusUnprocessableEntity, string(se.Stage)
	default:
		return http.StatusInternalServerError, string(se.Stage)
	}
}

// uploadExt keeps the client's extension so the decoder can sniff the
// container; anything odd becomes .bin.
func uploadExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 6 {
		return ".bin"
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ".bin"
		}
	}
	return ext
}

func (s *implServer) removeUpload(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn(ctx, "Failed to remove upload %s: %v", path, err)
	}
}

func (s *implServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/health" {
			return
		}
		s.logger.Info(c.Request.Context(), "%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
