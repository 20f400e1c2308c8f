package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/jekabolt/edupath/internal/entity"
	"github.com/jekabolt/edupath/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalogs(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	lib := c.Library()
	require.Len(t, lib, 6)
	assert.Equal(t, "psychology", lib[0].Id)
	assert.Len(t, lib[0].Documents, 3)
	assert.False(t, lib[0].Empty)
	assert.True(t, lib[2].Empty)
	assert.NotNil(t, lib[2].Documents)

	courses := c.Courses()
	assert.Len(t, courses, len(entity.TrainingFields))

	tour, ok := c.CoursesFor(entity.FieldTourisme)
	require.True(t, ok)
	assert.Len(t, tour.Documents, 4)
	sante, ok := c.CoursesFor(entity.FieldSante)
	require.True(t, ok)
	assert.True(t, sante.Empty)
	_, ok = c.CoursesFor("astronomie")
	assert.False(t, ok)
}

func TestLibraryIsCopied(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)
	lib := c.Library()
	lib[0].Documents[0].Title = "changed"
	assert.NotEqual(t, "changed", c.Library()[0].Documents[0].Title)
}

func TestLoadRejects(t *testing.T) {
	lib := &fstest.MapFile{Data: []byte("categories:\n  - id: a\n    title: A\n")}
	for name, fsys := range map[string]fstest.MapFS{
		"missing courses": {libraryFile: lib},
		"unknown field": {
			libraryFile: lib,
			coursesFile: &fstest.MapFile{Data: []byte("categories:\n  - id: astronomie\n    title: Astronomie\n")},
		},
		"duplicate": {
			libraryFile: &fstest.MapFile{Data: []byte("categories:\n  - id: a\n    title: A\n  - id: a\n    title: B\n")},
			coursesFile: &fstest.MapFile{Data: []byte("categories: []\n")},
		},
		"no pdf": {
			libraryFile: &fstest.MapFile{Data: []byte("categories:\n  - id: a\n    title: A\n    documents:\n      - id: x\n        title: X\n")},
			coursesFile: &fstest.MapFile{Data: []byte("categories: []\n")},
		},
		"bad yaml": {
			libraryFile: &fstest.MapFile{Data: []byte("categories: [")},
			coursesFile: &fstest.MapFile{Data: []byte("categories: []\n")},
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(fsys)
			assert.Error(t, err)
		})
	}
}

func TestTrainingFieldLabelsExist(t *testing.T) {
	cat, err := locale.LoadEmbedded()
	require.NoError(t, err)
	fields := TrainingFields()
	require.Len(t, fields, 11)
	for _, f := range fields {
		for _, code := range locale.Codes {
			_, ok := cat.Lookup(code, f.LabelKey)
			assert.True(t, ok, "%s %s", code, f.LabelKey)
		}
	}
}
