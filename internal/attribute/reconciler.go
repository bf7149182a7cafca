// Package attribute maps supplier feed values onto a marketplace
// category's attribute schema, preferring enumerated value ids and
// falling back to free text or safe defaults so that required
// attributes never block a submission.
package attribute

import (
	"math"
	"strings"

	"github.com/marketfeed/trendyol-sync/internal/measure"
	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/samber/lo"
)

// defaultTolerance is the maximum numeric distance, in liters, at which
// a candidate still matches an enumerated value.
const defaultTolerance = 0.1

// originAttributeToken identifies the country-of-origin attribute in a
// schema; products are always submitted as domestic.
const (
	originAttributeToken = "mense"
	domesticOriginValue  = "turkiye"
)

// safeDefaults are enumerated value names acceptable as a required
// attribute's value when nothing better can be resolved.
var safeDefaults = []string{
	"cok renkli", "karisik", "diger", "belirtilmemis",
	"gumus", "metalik", "tek renk", "standart",
}

// Entry is one resolved attribute of a submission payload. Exactly one
// of AttributeValueID and CustomValue is set.
type Entry struct {
	AttributeID      int
	AttributeValueID *int
	CustomValue      *string
}

// Option is custom configuration of Reconciler.
type Option func(r *Reconciler)

// Reconciler resolves attribute values against a category schema.
type Reconciler struct {
	tolerance float64
}

// NewReconciler returns a new Reconciler.
func NewReconciler(ops ...Option) *Reconciler {
	rec := &Reconciler{
		tolerance: defaultTolerance,
	}

	for _, op := range ops {
		op(rec)
	}

	return rec
}

// WithTolerance sets the numeric-proximity tolerance in liters.
func WithTolerance(tolerance float64) Option {
	return func(r *Reconciler) {
		r.tolerance = tolerance
	}
}

// Reconcile produces submission entries for item under schema. Mapped
// attributes are resolved first, then every required attribute still
// missing a value is backfilled, then hard overrides are applied.
func (r *Reconciler) Reconcile(
	schema []models.SchemaAttribute,
	mappings []models.AttributeMapping,
	item models.FeedItem,
) []Entry {
	productText := fold(item.Name + " " + item.Description)
	resolved := make(map[int]Entry, len(schema))

	for _, mapping := range mappings {
		attr, ok := findAttribute(schema, mapping.AttributeID)
		if !ok {
			continue
		}

		candidate := r.candidateValue(mapping, attr, item, productText)
		if candidate == "" {
			continue
		}

		if id, ok := r.matchValue(candidate, attr.Values); ok {
			resolved[attr.ID] = Entry{AttributeID: attr.ID, AttributeValueID: lo.ToPtr(id)}
			continue
		}
		resolved[attr.ID] = Entry{AttributeID: attr.ID, CustomValue: lo.ToPtr(candidate)}
	}

	r.backfillRequired(schema, resolved, productText)
	r.overrideOrigin(schema, resolved)

	entries := make([]Entry, 0, len(resolved))
	for _, attr := range schema {
		if entry, ok := resolved[attr.ID]; ok {
			entries = append(entries, entry)
		}
	}

	return entries
}

// candidateValue picks the raw value for a mapping according to its
// type: a configured constant, a feed field lookup, or a substring scan
// of the product text over the enumerated value names.
func (r *Reconciler) candidateValue(
	mapping models.AttributeMapping,
	attr models.SchemaAttribute,
	item models.FeedItem,
	productText string,
) string {
	switch mapping.Type {
	case models.MappingFixed:
		if mapping.StaticValue != nil {
			return *mapping.StaticValue
		}
	case models.MappingFeed:
		if mapping.FeedField != nil {
			return item.Raw[*mapping.FeedField]
		}
	case models.MappingSmart:
		return smartMatch(attr.Values, productText)
	}
	return ""
}

// matchValue resolves a candidate to an enumerated value id. Strategies
// in order: folded text equality (raw and unit-stripped forms), decimal
// separator tolerant equality, then numeric proximity through the
// measurement parser.
func (r *Reconciler) matchValue(candidate string, values []models.AttributeValue) (int, bool) {
	cand := fold(candidate)
	candStripped := stripUnits(cand)

	for _, v := range values {
		name := fold(v.Name)
		nameStripped := stripUnits(name)
		if cand == name || cand == nameStripped || candStripped == name || candStripped == nameStripped {
			return v.ID, true
		}
	}

	for _, v := range values {
		if commaToDot(candStripped) == commaToDot(stripUnits(fold(v.Name))) {
			return v.ID, true
		}
	}

	candValue, ok := measure.Parse(candidate)
	if !ok {
		return 0, false
	}

	bestID := 0
	bestDiff := math.MaxFloat64
	for _, v := range values {
		value, ok := measure.Parse(v.Name)
		if !ok {
			continue
		}
		if diff := math.Abs(candValue - value); diff < bestDiff {
			bestDiff = diff
			bestID = v.ID
		}
	}

	if bestDiff <= r.tolerance {
		return bestID, true
	}

	return 0, false
}

// backfillRequired fills every required attribute that resolution left
// empty. A possibly wrong but schema-compliant value beats a rejected
// submission; correction is deferred to a human reviewer.
func (r *Reconciler) backfillRequired(
	schema []models.SchemaAttribute,
	resolved map[int]Entry,
	productText string,
) {
	for _, attr := range schema {
		if !attr.Required {
			continue
		}
		if _, ok := resolved[attr.ID]; ok {
			continue
		}
		if len(attr.Values) == 0 {
			continue
		}

		if name := smartMatch(attr.Values, productText); name != "" {
			if id, ok := r.matchValue(name, attr.Values); ok {
				resolved[attr.ID] = Entry{AttributeID: attr.ID, AttributeValueID: lo.ToPtr(id)}
				continue
			}
		}

		if value, ok := safeDefaultValue(attr.Values); ok {
			resolved[attr.ID] = Entry{AttributeID: attr.ID, AttributeValueID: lo.ToPtr(value.ID)}
			continue
		}

		resolved[attr.ID] = Entry{AttributeID: attr.ID, AttributeValueID: lo.ToPtr(attr.Values[0].ID)}
	}
}

// overrideOrigin forces the country-of-origin attribute to the domestic
// value whenever the schema carries it, regardless of what generic
// resolution produced.
func (r *Reconciler) overrideOrigin(schema []models.SchemaAttribute, resolved map[int]Entry) {
	for _, attr := range schema {
		if !strings.Contains(fold(attr.Name), originAttributeToken) {
			continue
		}
		for _, v := range attr.Values {
			if fold(v.Name) == domesticOriginValue {
				resolved[attr.ID] = Entry{AttributeID: attr.ID, AttributeValueID: lo.ToPtr(v.ID)}
				return
			}
		}
	}
}

// smartMatch returns the first enumerated value whose folded name
// appears inside the folded product text.
func smartMatch(values []models.AttributeValue, productText string) string {
	for _, v := range values {
		name := fold(v.Name)
		if name != "" && strings.Contains(productText, name) {
			return v.Name
		}
	}
	return ""
}

func safeDefaultValue(values []models.AttributeValue) (models.AttributeValue, bool) {
	for _, v := range values {
		name := fold(v.Name)
		for _, def := range safeDefaults {
			if name == def {
				return v, true
			}
		}
	}
	return models.AttributeValue{}, false
}

func findAttribute(schema []models.SchemaAttribute, id int) (models.SchemaAttribute, bool) {
	for _, attr := range schema {
		if attr.ID == id {
			return attr, true
		}
	}
	return models.SchemaAttribute{}, false
}
