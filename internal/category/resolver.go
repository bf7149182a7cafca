// Package category maps supplier category paths and brand names onto
// the marketplace taxonomy, and looks up per-category commission rates
// for pricing.
package category

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/shopspring/decimal"
)

// defaultSimilarity is the minimum sequence-similarity ratio for a
// fuzzy category match.
const defaultSimilarity = 0.70

// Shortlist scoring weights. Tokens of 2 characters or fewer carry no
// signal and are ignored.
const (
	titleSubstringScore = 50
	nameTokenScore      = 10
	pathTokenScore      = 3
	minTokenLength      = 3
)

var turkishFolder = strings.NewReplacer(
	"ı", "i", "I", "i", "İ", "i",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

func fold(s string) string {
	return strings.ToLower(turkishFolder.Replace(s))
}

// Option is custom configuration of Resolver.
type Option func(r *Resolver)

// Resolver matches feed categories against marketplace leaf categories.
type Resolver struct {
	similarity float64
	metric     *metrics.RatcliffObershelp
}

// NewResolver returns a new Resolver.
func NewResolver(ops ...Option) *Resolver {
	res := &Resolver{
		similarity: defaultSimilarity,
		metric:     metrics.NewRatcliffObershelp(),
	}

	for _, op := range ops {
		op(res)
	}

	return res
}

// WithSimilarity sets the fuzzy match threshold.
func WithSimilarity(similarity float64) Option {
	return func(r *Resolver) {
		r.similarity = similarity
	}
}

// ResolveExact matches the last segment of a feed category path against
// leaf category names, case-folded.
func (r *Resolver) ResolveExact(feedPath string, leaves []models.LeafCategory) (int, bool) {
	segment := fold(lastSegment(feedPath))
	if segment == "" {
		return 0, false
	}

	for _, leaf := range leaves {
		if fold(leaf.Name) == segment {
			return leaf.ID, true
		}
	}

	return 0, false
}

// ResolveFuzzy matches the last path segment against leaf names by
// sequence similarity, keeping the highest-scoring leaf at or above the
// threshold. The first of equally-scored leaves wins.
func (r *Resolver) ResolveFuzzy(feedPath string, leaves []models.LeafCategory) (int, bool) {
	segment := fold(lastSegment(feedPath))
	if segment == "" {
		return 0, false
	}

	bestID := 0
	bestScore := 0.0
	for _, leaf := range leaves {
		score := strutil.Similarity(segment, fold(leaf.Name), r.metric)
		if score > bestScore {
			bestScore = score
			bestID = leaf.ID
		}
	}

	if bestScore >= r.similarity {
		return bestID, true
	}

	return 0, false
}

// Shortlist scores every leaf against the feed path and product title
// and returns the top candidates, best first. It is the local half of
// the AI-assisted match: the model only ever chooses among these.
func (r *Resolver) Shortlist(
	feedPath string,
	productTitle string,
	leaves []models.LeafCategory,
	limit int,
) []models.LeafCategory {
	title := fold(productTitle)
	pathTokens := tokenize(feedPath)

	type scored struct {
		leaf  models.LeafCategory
		score int
	}

	candidates := make([]scored, 0, len(leaves))
	for _, leaf := range leaves {
		score := 0

		name := fold(leaf.Name)
		if name != "" && strings.Contains(title, name) {
			score += titleSubstringScore
		}

		nameTokens := tokenize(leaf.Name)
		leafPathTokens := tokenize(leaf.Path)
		for token := range pathTokens {
			if nameTokens[token] {
				score += nameTokenScore
			}
			if leafPathTokens[token] {
				score += pathTokenScore
			}
		}

		if score > 0 {
			candidates = append(candidates, scored{leaf: leaf, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	shortlist := make([]models.LeafCategory, 0, len(candidates))
	for _, c := range candidates {
		shortlist = append(shortlist, c.leaf)
	}

	return shortlist
}

// ResolveBrand matches a feed brand name against brand mappings.
func (r *Resolver) ResolveBrand(feedBrand string, brands []models.BrandMapping) (int, bool) {
	name := fold(feedBrand)
	if name == "" {
		return 0, false
	}

	for _, brand := range brands {
		if fold(brand.FeedBrand) == name {
			return brand.BrandID, true
		}
	}

	return 0, false
}

// CommissionFor looks up the commission rate of a mapped category. Id
// equality is tried first, then the mapped display name as an exact or
// hierarchical suffix match against the reference table.
func CommissionFor(
	mapping models.CategoryMapping,
	table []models.CommissionCategory,
) *decimal.Decimal {
	for _, row := range table {
		if row.CategoryID == mapping.CategoryID {
			rate := row.CommissionRate
			return &rate
		}
	}

	if mapping.CategoryName == nil {
		return nil
	}

	name := fold(*mapping.CategoryName)
	for _, row := range table {
		rowName := fold(row.Name)
		if rowName == name || strings.HasSuffix(rowName, " > "+name) {
			rate := row.CommissionRate
			return &rate
		}
	}

	return nil
}

func lastSegment(path string) string {
	segments := strings.Split(path, ">")
	return strings.TrimSpace(segments[len(segments)-1])
}

func tokenize(s string) map[string]bool {
	tokens := map[string]bool{}
	for _, field := range strings.Fields(fold(strings.ReplaceAll(s, ">", " "))) {
		if len([]rune(field)) >= minTokenLength {
			tokens[field] = true
		}
	}
	return tokens
}
