package reporter

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/speech-coach/internal/logger"
)

const listenInstruction = "Listen to the attached audio and analyze the speech based on the transcript and metrics below.\n"

// deleteTimeout bounds removal of an uploaded recording, which runs even
// after the request context is done.
const deleteTimeout = 30 * time.Second

type geminiBackend struct {
	client      *genai.Client
	model       string
	inlineLimit int64
	logger      logger.Logger
}

func newGeminiBackend(ctx context.Context, key, baseURL, model string, inlineLimit int64, log logger.Logger) (*geminiBackend, error) {
	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &geminiBackend{client: client, model: model, inlineLimit: inlineLimit, logger: log}, nil
}

func (g *geminiBackend) supportsAudio() bool { return true }

// complete sends the prompt, with the recording attached when audioPath
// exists. Small files go inline, larger ones through the Files API.
func (g *geminiBackend) complete(ctx context.Context, prompt, audioPath string) (string, error) {
	var parts []*genai.Part

	if audioPath != "" {
		part, uploaded, err := g.audioPart(ctx, audioPath)
		if err != nil {
			return "", err
		}
		if uploaded != "" {
			defer g.deleteUpload(ctx, uploaded)
		}
		if part != nil {
			parts = append(parts, part)
			prompt = listenInstruction + prompt
		}
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" && !part.Thought {
				text.WriteString(part.Text)
			}
		}
		if text.Len() > 0 {
			return text.String(), nil
		}
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// audioPart returns nil when the file does not exist. uploaded names the
// remote file when the recording went through the Files API.
func (g *geminiBackend) audioPart(ctx context.Context, audioPath string) (part *genai.Part, uploaded string, err error) {
	info, err := os.Stat(audioPath)
	if err != nil || info.IsDir() {
		return nil, "", nil
	}

	if info.Size() <= g.inlineLimit {
		data, err := os.ReadFile(audioPath)
		if err != nil {
			return nil, "", fmt.Errorf("read audio: %w", err)
		}
		return genai.NewPartFromBytes(data, "audio/wav"), "", nil
	}

	file, err := g.client.Files.UploadFromPath(ctx, audioPath, &genai.UploadFileConfig{MIMEType: "audio/wav"})
	if err != nil {
		return nil, "", fmt.Errorf("upload audio: %w", err)
	}
	return genai.NewPartFromURI(file.URI, file.MIMEType), file.Name, nil
}

func (g *geminiBackend) deleteUpload(ctx context.Context, name string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deleteTimeout)
	defer cancel()

	if _, err := g.client.Files.Delete(ctx, name, nil); err != nil {
		g.logger.Warn(ctx, "Failed to delete uploaded audio %s: %v", name, err)
		return
	}
	g.logger.Debug(ctx, "Deleted uploaded audio %s", name)
}
