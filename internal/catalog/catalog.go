// Package catalog serves the static document catalogs: the library shelves
// and the course materials of every training field.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/jekabolt/edupath/internal/entity"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	libraryFile = "data/library.yaml"
	coursesFile = "data/courses.yaml"
)

// Document is a downloadable PDF. Library books carry an author, course
// materials a description.
type Document struct {
	Id          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Author      string `yaml:"author" json:"author,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	PdfURL      string `yaml:"pdf_url" json:"pdf_url"`
}

type Category struct {
	Id          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Documents   []Document `yaml:"documents" json:"documents"`
	// Empty is set for categories without documents yet.
	Empty bool `yaml:"-" json:"empty"`
}

type file struct {
	Categories []Category `yaml:"categories"`
}

// Field is a training field with the catalog key of its label.
type Field struct {
	Id       entity.TrainingField `json:"id"`
	LabelKey string               `json:"label_key"`
}

type Catalog struct {
	library []Category
	courses []Category
}

// LoadEmbedded reads the catalogs compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return Load(embedded)
}

// Load reads data/library.yaml and data/courses.yaml from fsys. Every course
// category must be a known training field.
func Load(fsys fs.FS) (*Catalog, error) {
	library, err := readCategories(fsys, libraryFile)
	if err != nil {
		return nil, err
	}
	courses, err := readCategories(fsys, coursesFile)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		if !entity.TrainingField(c.Id).Valid() {
			return nil, fmt.Errorf("%s: category %q is not a training field", coursesFile, c.Id)
		}
	}
	return &Catalog{library: library, courses: courses}, nil
}

func readCategories(fsys fs.FS, name string) ([]Category, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("can't read catalog %s: %w", name, err)
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("can't parse catalog %s: %w", name, err)
	}

	seen := map[string]bool{}
	for i := range f.Categories {
		c := &f.Categories[i]
		if c.Id == "" || c.Title == "" {
			return nil, fmt.Errorf("%s: category %d has no id or title", name, i)
		}
		if seen[c.Id] {
			return nil, fmt.Errorf("%s: duplicate category %q", name, c.Id)
		}
		seen[c.Id] = true
		for _, d := range c.Documents {
			if d.Title == "" || d.PdfURL == "" {
				return nil, fmt.Errorf("%s: document %q in %q has no title or pdf url", name, d.Id, c.Id)
			}
		}
		if c.Documents == nil {
			c.Documents = []Document{}
		}
		c.Empty = len(c.Documents) == 0
	}
	return f.Categories, nil
}

func (c *Catalog) Library() []Category {
	return clone(c.library)
}

func (c *Catalog) Courses() []Category {
	return clone(c.courses)
}

// CoursesFor returns the course category of a training field.
func (c *Catalog) CoursesFor(field entity.TrainingField) (Category, bool) {
	for _, cat := range c.courses {
		if cat.Id == string(field) {
			return clone([]Category{cat})[0], true
		}
	}
	return Category{}, false
}

// TrainingFields lists the fields in display order.
func TrainingFields() []Field {
	fields := make([]Field, 0, len(entity.TrainingFields))
	for _, f := range entity.TrainingFields {
		fields = append(fields, Field{Id: f, LabelKey: "field." + string(f)})
	}
	return fields
}

func clone(cats []Category) []Category {
	out := make([]Category, len(cats))
	for i, c := range cats {
		c.Documents = append([]Document{}, c.Documents...)
		out[i] = c
	}
	return out
}
