// Package ai builds Spanish prompts from structured project fields and
// forwards them to a hosted generative-text model. Every operation degrades
// to a deterministic local fallback instead of propagating API failures.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// SummaryFallback is returned whenever the model is unavailable or errors.
const SummaryFallback = "No se pudo generar el resumen del proyecto en este momento."

// SummaryRequest carries the project fields embedded into the summary prompt.
type SummaryRequest struct {
	Title        string   `json:"title" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Technologies []string `json:"technologies"`
	Author       string   `json:"author,omitempty"`
	Description  string   `json:"description" validate:"required"`
}

// SearchIntent is the structured interpretation of a free-text search query.
type SearchIntent struct {
	Technologies []string `json:"technologies"`
	Categories   []string `json:"categories"`
	Keywords     []string `json:"keywords"`
}

// Service wraps a Generator with the two assist operations.
type Service struct {
	generator Generator
}

// NewService creates a Service. generator may be nil (fallback-only mode).
func NewService(generator Generator) *Service {
	return &Service{generator: generator}
}

// Summarize asks the model for a short Spanish summary of the project.
// The three-sentence cap is prompt-enforced only. Always returns usable
// text; failures yield SummaryFallback.
func (s *Service) Summarize(ctx context.Context, req SummaryRequest) string {
	if s.generator == nil {
		return SummaryFallback
	}

	prompt := fmt.Sprintf(
		"Eres un asistente de una plataforma universitaria de proyectos estudiantiles. "+
			"Resume el siguiente proyecto en un máximo de 3 oraciones, en español, "+
			"destacando su propósito y las tecnologías utilizadas.\n\n"+
			"Título: %s\nCategoría: %s\nTecnologías: %s\nAutor: %s\nDescripción: %s",
		req.Title, req.Category, strings.Join(req.Technologies, ", "), req.Author, req.Description,
	)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("AI summary failed, using fallback: %v", err)
		return SummaryFallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return SummaryFallback
	}
	return text
}

// AnalyzeSearch asks the model for a JSON-only search-intent object. On any
// failure (no key, API error, unparseable output) it falls back to local
// keyword tokenization; synonym expansion is a model-only feature.
func (s *Service) AnalyzeSearch(ctx context.Context, query string) SearchIntent {
	if s.generator == nil {
		return SearchIntent{Keywords: FallbackKeywords(query)}
	}

	prompt := fmt.Sprintf(
		"Analiza la siguiente búsqueda de un usuario en una plataforma de proyectos "+
			"estudiantiles y responde ÚNICAMENTE con un objeto JSON, sin texto adicional, "+
			"con esta forma: {\"technologies\": [], \"categories\": [], \"keywords\": []}. "+
			"Incluye sinónimos relevantes en keywords.\n\nBúsqueda: %q", query,
	)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("AI search analysis failed, using fallback: %v", err)
		return SearchIntent{Keywords: FallbackKeywords(query)}
	}

	var intent SearchIntent
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &intent); err != nil {
		log.Printf("AI search analysis returned unparseable JSON, using fallback: %v", err)
		return SearchIntent{Keywords: FallbackKeywords(query)}
	}
	return intent
}

// stripCodeFence removes a markdown ```json fence the model sometimes wraps
// around its output despite the JSON-only instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
