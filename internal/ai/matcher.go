package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marketfeed/trendyol-sync/internal/attribute"
	"github.com/marketfeed/trendyol-sync/internal/category"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/samber/lo"
)

// Candidate list caps keep the prompt within a sane token budget.
const (
	shortlistLimit      = 25
	attributeValueLimit = 50
)

//go:generate mockery --name Generator --filename generator.go

// Generator produces a text answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Matcher delegates category and attribute selection to the generation
// model, constrained to locally-built candidate shortlists. Answers
// outside the candidate set are rejected, never trusted.
type Matcher struct {
	generator Generator
	resolver  *category.Resolver
}

// NewMatcher returns a new Matcher.
func NewMatcher(generator Generator, resolver *category.Resolver) *Matcher {
	return &Matcher{
		generator: generator,
		resolver:  resolver,
	}
}

// MatchCategory asks the model to pick the marketplace category for a
// feed category path, choosing among a locally-scored shortlist.
func (m *Matcher) MatchCategory(
	ctx context.Context,
	feedPath string,
	productTitle string,
	leaves []models.LeafCategory,
) (int, error) {
	shortlist := m.resolver.Shortlist(feedPath, productTitle, leaves, shortlistLimit)
	if len(shortlist) == 0 {
		return 0, fmt.Errorf("no shortlist for %q: %w", feedPath, ErrUnexpectedAnswer)
	}

	var prompt strings.Builder
	prompt.WriteString("Bir e-ticaret kategorisi eşleştiriyorsun.\n")
	fmt.Fprintf(&prompt, "Tedarikçi kategorisi: %q\nÜrün adı: %q\n", feedPath, productTitle)
	prompt.WriteString("Aşağıdaki adaylardan en uygun kategoriyi seç:\n")
	for _, leaf := range shortlist {
		fmt.Fprintf(&prompt, "- id=%d: %s\n", leaf.ID, leaf.Path)
	}
	prompt.WriteString(`Sadece JSON döndür: {"categoryId": <id>}`)

	answer, err := m.generator.Generate(ctx, prompt.String())
	if err != nil {
		return 0, fmt.Errorf("can't match category: %w", err)
	}

	var parsed struct {
		CategoryID int `json:"categoryId"`
	}
	if err := json.Unmarshal([]byte(StripCodeFences(answer)), &parsed); err != nil {
		return 0, fmt.Errorf("can't decode category answer: %w", err)
	}

	if !lo.ContainsBy(shortlist, func(leaf models.LeafCategory) bool { return leaf.ID == parsed.CategoryID }) {
		return 0, fmt.Errorf("category id %d: %w", parsed.CategoryID, ErrUnexpectedAnswer)
	}

	return parsed.CategoryID, nil
}

// MatchAttributes asks the model to fill a category's attribute schema
// from the supplier's raw fields. Entries referencing unknown attribute
// or value ids are dropped.
func (m *Matcher) MatchAttributes(
	ctx context.Context,
	schema []models.SchemaAttribute,
	item models.FeedItem,
) ([]attribute.Entry, error) {
	if len(schema) == 0 {
		return nil, nil
	}

	var prompt strings.Builder
	prompt.WriteString("Bir ürünün pazaryeri özelliklerini dolduruyorsun.\n")
	fmt.Fprintf(&prompt, "Ürün adı: %q\nAçıklama: %q\n", item.Name, item.Description)
	if len(item.Raw) > 0 {
		prompt.WriteString("Tedarikçi alanları:\n")
		for key, value := range item.Raw {
			fmt.Fprintf(&prompt, "- %s: %s\n", key, value)
		}
	}
	prompt.WriteString("Özellikler ve izin verilen değerler:\n")
	for _, attr := range schema {
		fmt.Fprintf(&prompt, "- attributeId=%d %s (zorunlu: %t)\n", attr.ID, attr.Name, attr.Required)
		for _, value := range lo.Slice(attr.Values, 0, attributeValueLimit) {
			fmt.Fprintf(&prompt, "    id=%d: %s\n", value.ID, value.Name)
		}
	}
	prompt.WriteString("Sadece JSON dizisi döndür: " +
		`[{"attributeId": <id>, "attributeValueId": <id>}] veya değer listesi yoksa ` +
		`[{"attributeId": <id>, "customAttributeValue": "<metin>"}]`)

	answer, err := m.generator.Generate(ctx, prompt.String())
	if err != nil {
		return nil, fmt.Errorf("can't match attributes: %w", err)
	}

	var parsed []struct {
		AttributeID      int     `json:"attributeId"`
		AttributeValueID *int    `json:"attributeValueId"`
		CustomValue      *string `json:"customAttributeValue"`
	}
	if err := json.Unmarshal([]byte(StripCodeFences(answer)), &parsed); err != nil {
		return nil, fmt.Errorf("can't decode attribute answer: %w", err)
	}

	var entries []attribute.Entry
	for _, entry := range parsed {
		attr, found := lo.Find(schema, func(a models.SchemaAttribute) bool { return a.ID == entry.AttributeID })
		if !found {
			continue
		}
		if entry.AttributeValueID != nil {
			valid := lo.ContainsBy(attr.Values, func(v models.AttributeValue) bool {
				return v.ID == *entry.AttributeValueID
			})
			if !valid {
				continue
			}
			entries = append(entries, attribute.Entry{
				AttributeID:      entry.AttributeID,
				AttributeValueID: entry.AttributeValueID,
			})
			continue
		}
		if entry.CustomValue != nil && *entry.CustomValue != "" {
			entries = append(entries, attribute.Entry{
				AttributeID: entry.AttributeID,
				CustomValue: entry.CustomValue,
			})
		}
	}

	return entries, nil
}
