package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/speech-coach/internal/logger"
)

// DefaultBaseURL is the upstream location of the whisper.cpp ggml models.
const DefaultBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/"

// modelFiles maps a tier to its ggml file name stem.
var modelFiles = map[string]string{
	"tiny":   "tiny",
	"base":   "base",
	"small":  "small",
	"medium": "medium",
	"large":  "large-v3",
}

// ModelFileName returns the ggml file name for a tier.
func ModelFileName(variant string) string {
	stem, ok := modelFiles[variant]
	if !ok {
		stem = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(variant), "ggml-"), ".bin")
	}
	return "ggml-" + stem + ".bin"
}

// DownloadResult describes the state of the ensured model file.
type DownloadResult struct {
	Path    string
	Existed bool
}

// Downloader retrieves whisper.cpp models into a local directory.
type Downloader struct {
	dest    string
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewDownloader creates a Downloader writing into dest. An empty baseURL
// means DefaultBaseURL.
func NewDownloader(dest, baseURL string, log logger.Logger) *Downloader {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Downloader{
		dest:    dest,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Minute,
		},
		logger: log,
	}
}

// EnsureModel makes sure the model for variant exists locally and returns
// its location. Partial downloads never replace the final file.
func (d *Downloader) EnsureModel(ctx context.Context, variant string) (DownloadResult, error) {
	if err := os.MkdirAll(d.dest, 0o755); err != nil {
		return DownloadResult{}, err
	}

	name := ModelFileName(variant)
	localPath := filepath.Join(d.dest, name)

	if info, err := os.Stat(localPath); err == nil && info.Size() > 0 {
		return DownloadResult{Path: localPath, Existed: true}, nil
	}

	url := d.baseURL + name
	tmpPath := localPath + ".downloading"

	d.logger.Info(ctx, "Downloading whisper model %s from %s", name, url)
	if err := d.download(ctx, url, tmpPath); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			d.logger.Warn(ctx, "Failed to remove partial download %s: %v", tmpPath, rmErr)
		}
		return DownloadResult{}, err
	}

	if err := os.Rename(tmpPath, localPath); err != nil {
		return DownloadResult{}, err
	}

	return DownloadResult{Path: localPath, Existed: false}, nil
}

func (d *Downloader) download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download model: %s", resp.Status)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}

	written, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if written == 0 {
		return fmt.Errorf("download model: empty body")
	}

	d.logger.Debug(ctx, "Downloaded %d bytes to %s", written, destPath)
	return nil
}
