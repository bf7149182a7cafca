package feed

import (
	"strconv"
	"strings"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/shopspring/decimal"
)

// Aliases is the ordered alias table used to resolve logical fields
// against the arbitrary element names suppliers use. First non-empty
// alias wins.
type Aliases struct {
	SKU         []string
	Name        []string
	Description []string
	Brand       []string
	Barcode     []string
	Category    []string
	Price       []string
	Stock       []string
	Images      []string
}

// DefaultAliases returns the alias table covering the supplier dialects
// seen so far, in Turkish, English and Google Merchant conventions.
func DefaultAliases() Aliases {
	return Aliases{
		SKU:  []string{"Product_code", "StokKodu", "UrunKodu", "sku", "code", "id", "g:id"},
		Name: []string{"Name", "UrunAdi", "Baslik", "name", "title", "g:title"},
		Description: []string{
			"Description", "Aciklama", "UrunAciklamasi", "Detay", "description", "g:description",
		},
		Brand:   []string{"Brand", "Marka", "brand", "g:brand"},
		Barcode: []string{"Barcode", "Barkod", "barcode", "gtin", "g:gtin", "ean"},
		Category: []string{
			"CategoryPath", "KategoriYolu", "Kategori", "KategoriAdi",
			"category_path", "category", "g:product_type",
		},
		Price: []string{
			"xml_bayii_alis_fiyati", "AlisFiyati", "BayiFiyati", "buying_price",
			"price", "g:price", "SatisFiyati", "Fiyat", "selling_price", "g:sale_price",
		},
		Stock:  []string{"Stok", "StokAdedi", "StokMiktari", "Stock", "stock", "quantity", "Miktar", "adet"},
		Images: []string{"Images", "Resimler", "Resim", "Gorsel", "images", "image", "image_link", "g:image_link"},
	}
}

// Extract resolves one decoded feed entry into a FeedItem. The second
// return value is false when no SKU can be resolved; such entries are
// unusable and skipped by the caller.
func (a Aliases) Extract(node map[string]any) (models.FeedItem, bool) {
	raw := flattenScalars(node)
	lookup := normalizeKeys(raw)

	sku := resolveAlias(lookup, a.SKU)
	if sku == "" {
		return models.FeedItem{}, false
	}

	return models.FeedItem{
		SKU:          sku,
		Name:         resolveAlias(lookup, a.Name),
		Description:  resolveAlias(lookup, a.Description),
		Brand:        resolveAlias(lookup, a.Brand),
		Barcode:      resolveAlias(lookup, a.Barcode),
		CategoryPath: resolveAlias(lookup, a.Category),
		Stock:        cleanStock(resolveAlias(lookup, a.Stock)),
		BuyingPrice:  cleanPrice(resolveAlias(lookup, a.Price)),
		ImageURLs:    extractImages(node, a.Images),
		Raw:          raw,
	}, true
}

// resolveAlias returns the first non-empty value among the aliases.
// Alias comparison ignores case and the "g:" namespace prefix.
func resolveAlias(lookup map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if value := lookup[normalizeKey(alias)]; value != "" {
			return value
		}
	}
	return ""
}

func normalizeKey(key string) string {
	key = strings.TrimPrefix(key, "g:")
	return strings.ToLower(key)
}

func normalizeKeys(raw map[string]string) map[string]string {
	lookup := make(map[string]string, len(raw))
	for key, value := range raw {
		normalized := normalizeKey(key)
		if _, exists := lookup[normalized]; !exists || lookup[normalized] == "" {
			lookup[normalized] = value
		}
	}
	return lookup
}

// flattenScalars collects the entry's string-valued children. Nested
// structures are left out; attribute mappings address scalar fields.
func flattenScalars(node map[string]any) map[string]string {
	raw := make(map[string]string, len(node))
	for key, value := range node {
		if s, ok := value.(string); ok {
			raw[key] = strings.TrimSpace(s)
		}
	}
	return raw
}

// extractImages gathers image URLs from the first matching alias,
// accepting a single value, a repeated element or one nesting level.
func extractImages(node map[string]any, aliases []string) []string {
	lookup := make(map[string]any, len(node))
	for key, value := range node {
		lookup[normalizeKey(key)] = value
	}

	for _, alias := range aliases {
		value, ok := lookup[normalizeKey(alias)]
		if !ok {
			continue
		}
		if urls := collectStrings(value); len(urls) > 0 {
			return urls
		}
	}
	return nil
}

func collectStrings(value any) []string {
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []any:
		var urls []string
		for _, entry := range v {
			urls = append(urls, collectStrings(entry)...)
		}
		return urls
	case map[string]any:
		var urls []string
		for _, entry := range v {
			urls = append(urls, collectStrings(entry)...)
		}
		return urls
	}
	return nil
}

// cleanPrice parses a price string in ambiguous locale format. Currency
// markers are stripped; with both separators present the dot is a
// thousands separator. Unparseable input yields zero, an input error is
// never fatal for the item.
func cleanPrice(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero
	}

	upper := strings.ToUpper(text)
	for _, marker := range []string{"TRY", "TL", "₺", "USD", "$", "EUR", "€"} {
		upper = strings.ReplaceAll(upper, marker, "")
	}

	var b strings.Builder
	for _, r := range upper {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	numeric := b.String()

	hasComma := strings.Contains(numeric, ",")
	hasDot := strings.Contains(numeric, ".")
	switch {
	case hasComma && hasDot:
		numeric = strings.ReplaceAll(numeric, ".", "")
		numeric = strings.ReplaceAll(numeric, ",", ".")
	case hasComma:
		numeric = strings.ReplaceAll(numeric, ",", ".")
	}

	price, err := decimal.NewFromString(numeric)
	if err != nil {
		return decimal.Zero
	}
	return price
}

// cleanStock parses a stock quantity, defaulting to zero on anything
// unparseable or negative.
func cleanStock(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if i := strings.IndexAny(text, ",."); i >= 0 {
		text = text[:i]
	}

	stock, err := strconv.Atoi(text)
	if err != nil || stock < 0 {
		return 0
	}
	return stock
}
