package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// CompletenessError reports a locale whose key set differs from the reference.
type CompletenessError struct {
	Locale  Code
	Missing []string
	Extra   []string
}

func (e *CompletenessError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unknown "+strings.Join(e.Extra, ", "))
	}
	return fmt.Sprintf("locale %s: %s", e.Locale, strings.Join(parts, "; "))
}

// Catalog is the immutable set of message tables, one per supported locale.
type Catalog struct {
	tables  map[Code]map[string]string
	keys    []string
	builder *catalog.Builder
}

// LoadEmbedded loads the catalogs shipped with the binary.
func LoadEmbedded() (*Catalog, error) {
	return Load(embeddedFS)
}

// Load reads locales/<code>.yaml for every supported code. Every locale must
// define exactly the keys of the reference locale.
func Load(fsys fs.FS) (*Catalog, error) {
	tables := make(map[Code]map[string]string, len(Codes))
	for _, code := range Codes {
		path := "locales/" + string(code) + ".yaml"
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if Code(strings.TrimSpace(file.Locale)) != code {
			return nil, fmt.Errorf("catalog %s: locale %q must match path locale %q", path, file.Locale, code)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages map is required", path)
		}
		table := make(map[string]string, len(file.Messages))
		for k, v := range file.Messages {
			key := strings.TrimSpace(k)
			if key == "" {
				return nil, fmt.Errorf("catalog %s: message key cannot be blank", path)
			}
			if strings.TrimSpace(v) == "" {
				return nil, fmt.Errorf("catalog %s: message %q is empty", path, key)
			}
			table[key] = v
		}
		tables[code] = table
	}
	return newCatalog(tables)
}

func newCatalog(tables map[Code]map[string]string) (*Catalog, error) {
	ref, ok := tables[Codes[0]]
	if !ok {
		return nil, fmt.Errorf("reference locale %s is not defined", Codes[0])
	}
	keys := make([]string, 0, len(ref))
	for k := range ref {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, code := range Codes[1:] {
		if err := compare(code, ref, tables[code]); err != nil {
			return nil, err
		}
	}

	b := catalog.NewBuilder(catalog.Fallback(Codes[0].Tag()))
	for _, code := range Codes {
		tag := code.Tag()
		for _, k := range keys {
			if err := b.SetString(tag, k, tables[code][k]); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", code, k, err)
			}
		}
	}

	return &Catalog{
		tables:  tables,
		keys:    keys,
		builder: b,
	}, nil
}

func compare(code Code, ref, table map[string]string) error {
	ce := &CompletenessError{Locale: code}
	for k := range ref {
		if _, ok := table[k]; !ok {
			ce.Missing = append(ce.Missing, k)
		}
	}
	for k := range table {
		if _, ok := ref[k]; !ok {
			ce.Extra = append(ce.Extra, k)
		}
	}
	if len(ce.Missing) == 0 && len(ce.Extra) == 0 {
		return nil
	}
	sort.Strings(ce.Missing)
	sort.Strings(ce.Extra)
	return ce
}

// Keys returns the sorted reference key set.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

func (c *Catalog) Lookup(code Code, key string) (string, bool) {
	v, ok := c.tables[code][key]
	return v, ok
}

// Table returns a copy of one locale's messages.
func (c *Catalog) Table(code Code) map[string]string {
	out := make(map[string]string, len(c.tables[code]))
	for k, v := range c.tables[code] {
		out[k] = v
	}
	return out
}

// Printer returns a printer bound to this catalog only.
func (c *Catalog) Printer(code Code) *message.Printer {
	return message.NewPrinter(code.Tag(), message.Catalog(c.builder))
}
