package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
)

// Generated content contract: titles sized for search listings,
// descriptions long enough to rank but not padded.
const (
	minTitleLength       = 70
	maxTitleLength       = 80
	minDescriptionWords  = 250
	maxDescriptionWords  = 600
	descriptionWordsHint = 400
)

// Rewriter generates marketplace-ready product titles and
// descriptions.
type Rewriter struct {
	generator Generator
}

// NewRewriter returns a new Rewriter.
func NewRewriter(generator Generator) *Rewriter {
	return &Rewriter{generator: generator}
}

// Content is one generated title and description pair.
type Content struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Rewrite produces new content for a product and validates it against
// the length contract before it is accepted.
func (r *Rewriter) Rewrite(ctx context.Context, product models.Product) (Content, error) {
	var prompt strings.Builder
	prompt.WriteString("Bir Türkçe e-ticaret ürün metni yazıyorsun.\n")
	fmt.Fprintf(&prompt, "Mevcut ad: %q\nMevcut açıklama: %q\n", product.Name, product.Description)
	if product.Brand != nil {
		fmt.Fprintf(&prompt, "Marka: %q\n", *product.Brand)
	}
	fmt.Fprintf(&prompt,
		"Başlık %d-%d karakter, açıklama yaklaşık %d kelime (%d-%d arası) olmalı.\n",
		minTitleLength, maxTitleLength, descriptionWordsHint, minDescriptionWords, maxDescriptionWords)
	prompt.WriteString(`Sadece JSON döndür: {"title": "...", "description": "..."}`)

	answer, err := r.generator.Generate(ctx, prompt.String())
	if err != nil {
		return Content{}, fmt.Errorf("can't rewrite content: %w", err)
	}

	var content Content
	if err := json.Unmarshal([]byte(StripCodeFences(answer)), &content); err != nil {
		return Content{}, fmt.Errorf("can't decode content answer: %w", err)
	}

	if err := validateContent(content); err != nil {
		return Content{}, err
	}

	return content, nil
}

func validateContent(content Content) error {
	titleLength := len([]rune(content.Title))
	if titleLength < minTitleLength || titleLength > maxTitleLength {
		return fmt.Errorf("title length %d: %w", titleLength, ErrInvalidContent)
	}

	words := len(strings.Fields(content.Description))
	if words < minDescriptionWords || words > maxDescriptionWords {
		return fmt.Errorf("description %d words: %w", words, ErrInvalidContent)
	}

	return nil
}
