package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"trends-backend/config"
)

// AnnotatedToken is one tagged token from the annotation service.
// NerLabel may be absent in the response, in which case it defaults to "O".
type AnnotatedToken struct {
	Form     string `json:"form"`
	PosTag   string `json:"posTag"`
	NerLabel string `json:"nerLabel"`
}

// Annotation is the annotator's response: sentences of tagged tokens.
type Annotation struct {
	Sentences [][]AnnotatedToken `json:"sentences"`
}

// Annotator produces tagged tokens for a piece of raw text. The concrete
// implementation is an external word-segmentation/POS/NER service; tests
// substitute a fake.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}

// VnCoreNLPService calls a VnCoreNLP-style annotation server over HTTP.
type VnCoreNLPService struct {
	cfg    *config.Config
	client *http.Client
}

// NewVnCoreNLPService creates an annotator client from configuration.
func NewVnCoreNLPService(cfg *config.Config) *VnCoreNLPService {
	return &VnCoreNLPService{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.AnnotatorTimeout,
		},
	}
}

type annotateRequest struct {
	Text string `json:"text"`
}

// Annotate sends text to the annotation server and decodes its sentence
// structure. Any transport or shape error is returned to the caller, who
// degrades to an empty token list.
func (s *VnCoreNLPService) Annotate(ctx context.Context, text string) (*Annotation, error) {
	body, err := json.Marshal(annotateRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode annotate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.AnnotatorURL+"/annotate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build annotate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("annotator returned status %d", resp.StatusCode)
	}

	var annotation Annotation
	if err := json.NewDecoder(resp.Body).Decode(&annotation); err != nil {
		return nil, fmt.Errorf("failed to decode annotator response: %w", err)
	}
	if annotation.Sentences == nil {
		return nil, fmt.Errorf("annotator response missing sentences")
	}

	return &annotation, nil
}
