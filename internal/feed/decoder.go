package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
)

// Option is custom configuration of Decoder.
type Option func(d *Decoder)

// Decoder parses supplier feed documents of unknown dialect into feed
// items. The document is read into a generic node tree first, then the
// product list is discovered and each entry's fields are resolved
// through the alias table.
type Decoder struct {
	aliases Aliases
}

// NewDecoder returns a new Decoder with the default alias table.
func NewDecoder(ops ...Option) *Decoder {
	dec := &Decoder{
		aliases: DefaultAliases(),
	}

	for _, op := range ops {
		op(dec)
	}

	return dec
}

// WithAliases sets a custom field alias table. New supplier dialects
// keep appearing, so the table is configuration, not code.
func WithAliases(aliases Aliases) Option {
	return func(d *Decoder) {
		d.aliases = aliases
	}
}

// Decode reads the whole feed document and returns its items. Entries
// without a resolvable SKU are skipped and counted, never fatal.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (items []models.FeedItem, skipped int, err error) {
	root, err := parseDocument(r)
	if err != nil {
		return nil, 0, fmt.Errorf("can't parse feed document: %w", err)
	}

	list, ok := findProductList(root)
	if !ok {
		return nil, 0, ErrNoProductList
	}

	items = make([]models.FeedItem, 0, len(list))
	for _, entry := range list {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}

		node, ok := entry.(map[string]any)
		if !ok {
			skipped++
			continue
		}

		item, ok := d.aliases.Extract(node)
		if !ok {
			skipped++
			continue
		}
		items = append(items, item)
	}

	return items, skipped, nil
}

// parseDocument reads an XML document into a generic tree of
// map[string]any, []any and string values. Repeated sibling elements
// collapse into a list under their shared name.
func parseDocument(r io.Reader) (map[string]any, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		if start, ok := token.(xml.StartElement); ok {
			node, err := parseElement(decoder, start)
			if err != nil {
				return nil, err
			}
			if m, ok := node.(map[string]any); ok {
				return m, nil
			}
			return map[string]any{start.Name.Local: node}, nil
		}
	}
}

func parseElement(decoder *xml.Decoder, start xml.StartElement) (any, error) {
	children := map[string]any{}
	var text strings.Builder

	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			child, err := parseElement(decoder, t)
			if err != nil {
				return nil, err
			}
			appendChild(children, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) > 0 {
				return children, nil
			}
			return strings.TrimSpace(text.String()), nil
		}
	}
}

// appendChild stores a child value, promoting repeated names to a list.
func appendChild(node map[string]any, name string, value any) {
	existing, ok := node[name]
	if !ok {
		node[name] = value
		return
	}
	if list, ok := existing.([]any); ok {
		node[name] = append(list, value)
		return
	}
	node[name] = []any{existing, value}
}

// findProductList locates the list of product entries. RSS documents
// keep it under channel/item; anything else gets scanned for the first
// list-valued field, one level deep.
func findProductList(root map[string]any) ([]any, bool) {
	if channel, ok := root["channel"].(map[string]any); ok {
		if items, ok := asList(channel["item"]); ok {
			return items, true
		}
	}
	if rss, ok := root["rss"].(map[string]any); ok {
		if channel, ok := rss["channel"].(map[string]any); ok {
			if items, ok := asList(channel["item"]); ok {
				return items, true
			}
		}
	}

	if items, ok := scanForList(root); ok {
		return items, true
	}
	for _, key := range sortedKeys(root) {
		if nested, ok := root[key].(map[string]any); ok {
			if items, ok := scanForList(nested); ok {
				return items, true
			}
		}
	}

	return nil, false
}

// scanForList returns the first list-valued field in key order, so a
// document carrying several lists resolves the same way every run.
func scanForList(node map[string]any) ([]any, bool) {
	for _, key := range sortedKeys(node) {
		if items, ok := node[key].([]any); ok {
			return items, true
		}
	}
	return nil, false
}

func sortedKeys(node map[string]any) []string {
	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// asList accepts both a proper list and a single entry, which is how a
// one-product feed decodes.
func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case map[string]any:
		return []any{v}, true
	}
	return nil, false
}
