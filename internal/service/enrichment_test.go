package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lumina-search/lumina/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func promptFor(title string) interface{} {
	return mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Title: "+title)
	})
}

func TestEnrichResults_NoCollaborator(t *testing.T) {
	svc := NewEnrichmentService(nil)
	assert.False(t, svc.Available())

	input := []domain.SearchResult{
		{Title: "Go", Link: "https://go.dev", Snippet: "The Go language"},
		{Title: "Rust", Link: "https://rust-lang.org", Snippet: "The Rust language"},
	}

	enriched := svc.EnrichResults(context.Background(), input)

	require.Len(t, enriched, 2)
	for i, r := range enriched {
		assert.Equal(t, input[i].Title, r.Title)
		assert.Equal(t, input[i].Link, r.Link)
		assert.Equal(t, "AI enhancement not available", r.Summary)
		assert.Equal(t, domain.CategoryUncategorized, r.Category)
		assert.Equal(t, 5, r.Relevance)
	}
}

func TestEnrichResults_PopulatesAllFieldsIndexAligned(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, promptFor("Go")).
		Return("Summary: A systems language by Google.\nCategory: Technology\nRelevance: 9", nil)
	gen.On("Generate", mock.Anything, promptFor("Mars rover")).
		Return("Summary: NASA's latest rover.\nCategory: Science\nRelevance: 7", nil)

	svc := NewEnrichmentService(gen)
	input := []domain.SearchResult{
		{Title: "Go", Link: "https://go.dev", Snippet: "golang"},
		{Title: "Mars rover", Link: "https://nasa.gov", Snippet: "rover"},
	}

	enriched := svc.EnrichResults(context.Background(), input)

	require.Len(t, enriched, 2)
	assert.Equal(t, "A systems language by Google.", enriched[0].Summary)
	assert.Equal(t, domain.CategoryTechnology, enriched[0].Category)
	assert.Equal(t, 9, enriched[0].Relevance)
	assert.Equal(t, "NASA's latest rover.", enriched[1].Summary)
	assert.Equal(t, domain.CategoryScience, enriched[1].Category)
	assert.Equal(t, 7, enriched[1].Relevance)
	gen.AssertExpectations(t)
}

func TestEnrichResults_PerElementFailureIsolation(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, promptFor("good")).
		Return("Summary: Fine.\nCategory: Health\nRelevance: 6", nil)
	gen.On("Generate", mock.Anything, promptFor("bad")).
		Return("", errors.New("timeout"))

	svc := NewEnrichmentService(gen)
	input := []domain.SearchResult{
		{Title: "good", Link: "https://a.example"},
		{Title: "bad", Link: "https://b.example"},
	}

	enriched := svc.EnrichResults(context.Background(), input)

	require.Len(t, enriched, 2)
	assert.Equal(t, "Fine.", enriched[0].Summary)
	assert.Equal(t, domain.CategoryHealth, enriched[0].Category)
	assert.Equal(t, "Unable to generate summary", enriched[1].Summary)
	assert.Equal(t, domain.CategoryUncategorized, enriched[1].Category)
	assert.Equal(t, 5, enriched[1].Relevance)
}

func TestParseEnrichment_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"too few lines", "Summary: only one line"},
		{"too many lines", "Summary: a\nCategory: Science\nRelevance: 5\nExtra: line"},
		{"relevance not an integer", "Summary: a\nCategory: Science\nRelevance: high"},
		{"relevance out of range", "Summary: a\nCategory: Science\nRelevance: 11"},
		{"unknown category", "Summary: a\nCategory: Gardening\nRelevance: 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := parseEnrichment(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestParseEnrichment_StripsLabelsAndBlankLines(t *testing.T) {
	summary, category, relevance, err := parseEnrichment(
		"\nSummary: A detailed look.\n\nCategory: Business\n\nRelevance: 8\n")

	require.NoError(t, err)
	assert.Equal(t, "A detailed look.", summary)
	assert.Equal(t, domain.CategoryBusiness, category)
	assert.Equal(t, 8, relevance)
}

func TestSuggestQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("no collaborator returns empty", func(t *testing.T) {
		svc := NewEnrichmentService(nil)
		assert.Empty(t, svc.SuggestQueries(ctx, "golang"))
	})

	t.Run("trims and caps at five", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).
			Return("one\n two \n\nthree\nfour\nfive\nsix\nseven", nil)

		svc := NewEnrichmentService(gen)
		suggestions := svc.SuggestQueries(ctx, "golang")

		assert.Equal(t, []string{"one", "two", "three", "four", "five"}, suggestions)
	})

	t.Run("generation failure returns empty", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("boom"))

		svc := NewEnrichmentService(gen)
		assert.Empty(t, svc.SuggestQueries(ctx, "golang"))
	})
}

func TestGenerateFAQs(t *testing.T) {
	ctx := context.Background()

	t.Run("no collaborator returns empty", func(t *testing.T) {
		svc := NewEnrichmentService(nil)
		assert.Empty(t, svc.GenerateFAQs(ctx, "golang"))
	})

	t.Run("extracts JSON array wrapped in prose", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return(
			"Here are your FAQs:\n[{\"question\":\"What is golang?\",\"answer\":\"A **great** language.\"}]\nEnjoy!", nil)

		svc := NewEnrichmentService(gen)
		faqs := svc.GenerateFAQs(ctx, "golang")

		require.Len(t, faqs, 1)
		assert.Equal(t, "What is golang?", faqs[0].Question)
		// Markdown is cleaned out of answers.
		assert.Equal(t, "A great language.", faqs[0].Answer)
	})

	t.Run("unparseable response falls back to placeholder", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("not json at all", nil)

		svc := NewEnrichmentService(gen)
		faqs := svc.GenerateFAQs(ctx, "golang")

		require.Len(t, faqs, 1)
		assert.Equal(t, "What is golang?", faqs[0].Question)
		assert.Equal(t, "Information not available. Please try a different query.", faqs[0].Answer)
	})

	t.Run("generation failure returns empty", func(t *testing.T) {
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("boom"))

		svc := NewEnrichmentService(gen)
		assert.Empty(t, svc.GenerateFAQs(ctx, "golang"))
	})
}

func TestCleanMarkdownFormatting(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"inline markup",
			"**bold** and *italic* and `code` and [link](url)",
			"bold and italic and code and link",
		},
		{
			"bullets become literal prefix",
			"* first item\n- second item",
			"• first item\n• second item",
		},
		{
			"headers and quotes removed",
			"# Heading\n> quoted line",
			"Heading\nquoted line",
		},
		{"empty", "", ""},
		{"plain text untouched", "nothing fancy here", "nothing fancy here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanMarkdownFormatting(tt.in))
		})
	}
}
