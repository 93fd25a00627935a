package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/lumina-search/lumina/internal/domain"
)

// Enrichment defaults applied when the AI collaborator is missing or fails.
const (
	summaryNotAvailable = "AI enhancement not available"
	summaryFailed       = "Unable to generate summary"
	defaultRelevance    = 5

	fallbackFAQAnswer = "Information not available. Please try a different query."

	maxSuggestions = 5
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FAQ is one generated question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EnrichmentService attaches AI-derived summary, category and relevance to
// raw search hits. Every failure degrades to defaults; enrichment never
// returns an error to its caller.
type EnrichmentService struct {
	gen Generator
}

// NewEnrichmentService creates an EnrichmentService. A nil generator means
// the collaborator is not configured: all operations degrade immediately
// without any network calls.
func NewEnrichmentService(gen Generator) *EnrichmentService {
	return &EnrichmentService{gen: gen}
}

// Available reports whether the AI collaborator is configured.
func (s *EnrichmentService) Available() bool {
	return s.gen != nil
}

// EnrichResults populates summary, category and relevance for every input
// element. The output is index-aligned with the input: element requests run
// concurrently but completion order never reorders results. Failures are
// isolated per element; one unparseable response defaults only that element.
func (s *EnrichmentService) EnrichResults(ctx context.Context, results []domain.SearchResult) []domain.SearchResult {
	enriched := make([]domain.SearchResult, len(results))

	if s.gen == nil {
		for i, r := range results {
			r.Summary = summaryNotAvailable
			r.Category = domain.CategoryUncategorized
			r.Relevance = defaultRelevance
			enriched[i] = r
		}
		return enriched
	}

	var wg sync.WaitGroup
	for i, r := range results {
		wg.Add(1)
		go func(i int, r domain.SearchResult) {
			defer wg.Done()
			enriched[i] = s.enrichOne(ctx, r)
		}(i, r)
	}
	wg.Wait()

	return enriched
}

func (s *EnrichmentService) enrichOne(ctx context.Context, r domain.SearchResult) domain.SearchResult {
	prompt := enrichmentPrompt(r)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return degraded(r)
	}

	summary, category, relevance, err := parseEnrichment(text)
	if err != nil {
		return degraded(r)
	}

	r.Summary = summary
	r.Category = category
	r.Relevance = relevance
	return r
}

func degraded(r domain.SearchResult) domain.SearchResult {
	r.Summary = summaryFailed
	r.Category = domain.CategoryUncategorized
	r.Relevance = defaultRelevance
	return r
}

func enrichmentPrompt(r domain.SearchResult) string {
	return fmt.Sprintf(`You are an expert search result analyzer. Analyze this search result and provide:
1. A detailed, informative summary (3-4 sentences) that captures the main points and context
2. A specific, relevant category from: Technology, Science, Business, Health, Education, Entertainment, Sports, Politics, or Other
3. A relevance score (1-10) based on how well the content matches the search intent

Search Result:
Title: %s
Snippet: %s

Format your response exactly as:
Summary: [your detailed summary here]
Category: [one of the specified categories]
Relevance: [number between 1-10]`, r.Title, r.Snippet)
}

// parseEnrichment splits a response into exactly three non-empty lines,
// strips the field-label prefixes and validates category and relevance.
func parseEnrichment(text string) (string, domain.Category, int, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != 3 {
		return "", "", 0, fmt.Errorf("expected 3 lines, got %d", len(lines))
	}

	summary := strings.TrimSpace(strings.TrimPrefix(lines[0], "Summary:"))
	category := domain.Category(strings.TrimSpace(strings.TrimPrefix(lines[1], "Category:")))
	relevanceStr := strings.TrimSpace(strings.TrimPrefix(lines[2], "Relevance:"))

	relevance, err := strconv.Atoi(relevanceStr)
	if err != nil {
		return "", "", 0, fmt.Errorf("relevance is not an integer: %q", relevanceStr)
	}
	if relevance < 1 || relevance > 10 {
		return "", "", 0, fmt.Errorf("relevance out of range: %d", relevance)
	}
	if !domain.IsValidCategory(category) {
		return "", "", 0, fmt.Errorf("unknown category: %q", category)
	}

	return summary, category, relevance, nil
}

// SuggestQueries returns up to five related search suggestions. On any
// failure, or when the collaborator is not configured, it returns an empty
// slice.
func (s *EnrichmentService) SuggestQueries(ctx context.Context, query string) []string {
	if s.gen == nil {
		return []string{}
	}

	prompt := fmt.Sprintf(`Given the search query: %q, provide 5 relevant search suggestions.
Format each suggestion on a new line.`, query)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return []string{}
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == maxSuggestions {
			break
		}
	}

	return suggestions
}

// GenerateFAQs asks the collaborator for five question/answer pairs about
// the query. Unparseable responses fall back to a single placeholder FAQ;
// a missing collaborator or a failed request yields an empty slice. Answers
// are normalized to plain prose.
func (s *EnrichmentService) GenerateFAQs(ctx context.Context, query string) []FAQ {
	if s.gen == nil {
		return []FAQ{}
	}

	prompt := fmt.Sprintf(`Given the search query: %q, generate 5 relevant frequently asked questions (FAQs) with detailed answers.
Each FAQ should be informative and helpful for someone interested in this topic.

Important: Provide answers in plain text format only. DO NOT use markdown formatting, asterisks, bullet points, or any special formatting characters.

Format your response as a JSON array that can be parsed:
[
  {
    "question": "What is %s?",
    "answer": "Detailed answer here in plain text without any markdown formatting or special characters."
  },
  ...and so on for 5 FAQs
]`, query, query)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return []FAQ{}
	}

	faqs, err := parseFAQs(text)
	if err != nil {
		return []FAQ{{
			Question: fmt.Sprintf("What is %s?", query),
			Answer:   fallbackFAQAnswer,
		}}
	}

	for i := range faqs {
		faqs[i].Answer = CleanMarkdownFormatting(faqs[i].Answer)
	}
	return faqs
}

// parseFAQs extracts the outermost JSON array from the response; models
// often wrap the array in prose or code fences.
func parseFAQs(text string) ([]FAQ, error) {
	var faqs []FAQ

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &faqs); err == nil {
			return faqs, nil
		}
	}

	if err := json.Unmarshal([]byte(text), &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

var (
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*]+)\*`)
	bulletRe     = regexp.MustCompile(`(?m)^\s*\*\s+`)
	headerRe     = regexp.MustCompile(`(?m)^#+\s+`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s+`)
	dashListRe   = regexp.MustCompile(`(?m)^-\s+`)
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// CleanMarkdownFormatting normalizes model output to plain prose: emphasis,
// inline code and link markup are stripped, heading and quote markers are
// removed, and list bullets are rewritten to a literal "• " prefix.
func CleanMarkdownFormatting(text string) string {
	if text == "" {
		return ""
	}

	cleaned := boldRe.ReplaceAllString(text, "$1")
	cleaned = italicRe.ReplaceAllString(cleaned, "$1")
	cleaned = bulletRe.ReplaceAllString(cleaned, "• ")
	cleaned = headerRe.ReplaceAllString(cleaned, "")
	cleaned = blockquoteRe.ReplaceAllString(cleaned, "")
	cleaned = dashListRe.ReplaceAllString(cleaned, "• ")
	cleaned = inlineCodeRe.ReplaceAllString(cleaned, "$1")
	cleaned = linkRe.ReplaceAllString(cleaned, "$1")

	return cleaned
}
