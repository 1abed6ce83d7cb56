package static_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexa-app/vexa-web/internal/static"
)

// assetRefPattern matches relative asset references in the landing page.
var assetRefPattern = regexp.MustCompile(`(?:src|href)="(assets/[^"]+)"`)

func TestIndexContainsBranding(t *testing.T) {
	assert.Contains(t, string(static.IndexHTML()), "Vexa")
}

func TestAllReferencedAssetsExist(t *testing.T) {
	refs := assetRefPattern.FindAllStringSubmatch(string(static.IndexHTML()), -1)
	require.NotEmpty(t, refs, "landing page should reference assets by relative path")

	for _, ref := range refs {
		data, err := static.FS.ReadFile(ref[1])
		assert.NoError(t, err, "referenced asset %s must be embedded", ref[1])
		assert.NotEmpty(t, data, ref[1])
	}
}

func TestFormPostsToPrejoinAPI(t *testing.T) {
	appJS, err := static.FS.ReadFile("assets/app.js")
	require.NoError(t, err)
	assert.Contains(t, string(appJS), "/api/prejoin")
}
