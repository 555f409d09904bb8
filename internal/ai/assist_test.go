package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func TestFallbackKeywords_DropsStopWords(t *testing.T) {
	keywords := FallbackKeywords("busco un proyecto ecologico")

	assert.Equal(t, []string{"ecologico"}, keywords)
}

func TestFallbackKeywords_NormalizesAccentsAndPunctuation(t *testing.T) {
	keywords := FallbackKeywords("¡Aplicación de Física, con React!")

	assert.Equal(t, []string{"fisica", "react"}, keywords)
}

func TestFallbackKeywords_Deduplicates(t *testing.T) {
	keywords := FallbackKeywords("react react node")

	assert.Equal(t, []string{"react", "node"}, keywords)
}

func TestFallbackKeywords_EmptyQuery(t *testing.T) {
	assert.Empty(t, FallbackKeywords("busco un proyecto"))
}

func TestSummarize_NoGenerator(t *testing.T) {
	svc := NewService(nil)

	got := svc.Summarize(context.Background(), SummaryRequest{Title: "EcoApp"})
	assert.Equal(t, SummaryFallback, got)
}

func TestSummarize_GeneratorError(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("quota exceeded")})

	got := svc.Summarize(context.Background(), SummaryRequest{Title: "EcoApp"})
	assert.Equal(t, SummaryFallback, got)
}

func TestSummarize_ReturnsModelText(t *testing.T) {
	svc := NewService(&fakeGenerator{response: " EcoApp ayuda a reciclar. "})

	got := svc.Summarize(context.Background(), SummaryRequest{Title: "EcoApp"})
	assert.Equal(t, "EcoApp ayuda a reciclar.", got)
}

func TestAnalyzeSearch_ParsesModelJSON(t *testing.T) {
	svc := NewService(&fakeGenerator{
		response: `{"technologies":["react"],"categories":["Ingeniería en TICs"],"keywords":["ecologico","reciclaje"]}`,
	})

	intent := svc.AnalyzeSearch(context.Background(), "busco un proyecto ecologico")
	assert.Equal(t, []string{"react"}, intent.Technologies)
	assert.Equal(t, []string{"ecologico", "reciclaje"}, intent.Keywords)
}

func TestAnalyzeSearch_StripsCodeFence(t *testing.T) {
	svc := NewService(&fakeGenerator{
		response: "```json\n{\"technologies\":[],\"categories\":[],\"keywords\":[\"ecologico\"]}\n```",
	})

	intent := svc.AnalyzeSearch(context.Background(), "ecologico")
	assert.Equal(t, []string{"ecologico"}, intent.Keywords)
}

func TestAnalyzeSearch_FallbackOnError(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("model not found")})

	intent := svc.AnalyzeSearch(context.Background(), "busco un proyecto ecologico")
	require.Equal(t, []string{"ecologico"}, intent.Keywords)
	assert.Empty(t, intent.Technologies)
	assert.Empty(t, intent.Categories)
}

func TestAnalyzeSearch_FallbackOnGarbage(t *testing.T) {
	svc := NewService(&fakeGenerator{response: "lo siento, no puedo ayudar con eso"})

	intent := svc.AnalyzeSearch(context.Background(), "busco un proyecto ecologico")
	assert.Equal(t, []string{"ecologico"}, intent.Keywords)
}

func TestAnalyzeSearch_NoGenerator(t *testing.T) {
	svc := NewService(nil)

	intent := svc.AnalyzeSearch(context.Background(), "busco un proyecto ecologico")
	assert.Equal(t, []string{"ecologico"}, intent.Keywords)
}
