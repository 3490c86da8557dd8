package brief

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/daybrief/daybrief/types"
)

const speechEndpoint = "https://api.openai.com/v1/audio/speech"

// Speaker renders brief text to an MP3 through the OpenAI speech API.
type Speaker struct {
	cfg      types.LLMConfig
	client   *http.Client
	endpoint string
}

// NewSpeaker creates a Speaker for the configured TTS model and voice.
func NewSpeaker(cfg types.LLMConfig) *Speaker {
	return &Speaker{
		cfg:      cfg,
		client:   &http.Client{Timeout: 60 * time.Second},
		endpoint: speechEndpoint,
	}
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize converts text to speech and writes the MP3 to path. The file
// is written atomically via a temp file in the same directory.
func (s *Speaker) Synthesize(ctx context.Context, text, path string) error {
	if s.cfg.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}

	body, err := json.Marshal(speechRequest{
		Model:          s.cfg.TTSModel,
		Input:          text,
		Voice:          s.cfg.TTSVoice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return fmt.Errorf("marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build speech request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("speech request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("speech API returned %d: %s", resp.StatusCode, string(msg))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".speech-*.mp3")
	if err != nil {
		return fmt.Errorf("create temp audio file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("move audio into place: %w", err)
	}
	return nil
}
