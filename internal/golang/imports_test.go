package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportManager_Add(t *testing.T) {
	im := NewImportManager()

	assert.Equal(t, "fmt", im.Add("fmt"))
	assert.Equal(t, "fmt", im.Add("fmt"), "adding twice returns the same name")
	assert.Equal(t, "filepath", im.Add("path/filepath"))
}

func TestImportManager_AddAs(t *testing.T) {
	im := NewImportManager()
	im.AddAs("github.com/google/uuid", "guid")

	assert.Equal(t, "guid", im.Name("github.com/google/uuid"))
	assert.Equal(t, "guid1", im.Add("example.com/guid"))
}

func TestImportManager_ConflictResolution(t *testing.T) {
	im := NewImportManager()

	assert.Equal(t, "c", im.Add("a/b/c"))
	assert.Equal(t, "c1", im.Add("d/e/c"))
	assert.Equal(t, "c2", im.Add("f/g/c"))
}

func TestImportManager_Specs(t *testing.T) {
	im := NewImportManager()
	im.Add("net/http")
	im.Add("example.com/a/model")
	im.Add("example.com/b/model")
	im.Add("gopkg.in/yaml.v3")

	assert.Equal(t, []string{
		`"example.com/a/model"`,
		`model1 "example.com/b/model"`,
		`"gopkg.in/yaml.v3"`,
		`"net/http"`,
	}, im.Specs())
	assert.Equal(t, "import (\n\t\"example.com/a/model\"\n\tmodel1 \"example.com/b/model\"\n\t\"gopkg.in/yaml.v3\"\n\t\"net/http\"\n)\n\n", im.Block())
	assert.Equal(t, "", NewImportManager().Block())
}

func TestPackageName(t *testing.T) {
	tests := map[string]string{
		"fmt":                            "fmt",
		"gopkg.in/yaml.v3":               "yaml",
		"github.com/caarlos0/go-version": "version",
		"github.com/go-chi/chi/v5":       "chi",
		"example.com/my-pkg":             "mypkg",
	}
	for in, want := range tests {
		assert.Equal(t, want, packageName(in), in)
	}
}

func TestImportManager_NilNameFallsBack(t *testing.T) {
	var im *ImportManager
	assert.Equal(t, "uuid", im.Name("github.com/google/uuid"))
}
