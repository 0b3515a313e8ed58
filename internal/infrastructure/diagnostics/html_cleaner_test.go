package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHTML_RemovesScriptStyle(t *testing.T) {
	out, err := CleanHTML(`
<body>
    <div id="main">Hello</div>
    <script>alert("hi")</script>
    <style>.x {}</style>
</body>`, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<style")
	assert.Contains(t, out, `id="main"`)
}

func TestCleanHTML_RemovesComments(t *testing.T) {
	out, err := CleanHTML(`<body><!-- secret comment --><div>Text</div></body>`, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "secret comment")
	assert.Contains(t, out, "Text")
}

func TestCleanHTML_KeepsSelectorAttributes(t *testing.T) {
	out, err := CleanHTML(`
<body>
  <div id="global-navigation-body-block" class="nav" data-test="x" aria-label="nav">
    <button onclick="punch()" style="color:red">出勤</button>
  </div>
</body>`, nil)
	require.NoError(t, err)

	assert.Contains(t, out, `id="global-navigation-body-block"`)
	assert.Contains(t, out, `class="nav"`)
	assert.Contains(t, out, `data-test="x"`)
	assert.Contains(t, out, `aria-label="nav"`)
	assert.Contains(t, out, "出勤")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "style=")
}

func TestCleanHTML_DropsInputValues(t *testing.T) {
	out, err := CleanHTML(`<body><input name="password" type="password" value="hunter2"></body>`, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, `name="password"`)
}

func TestCleanHTML_DropsHead(t *testing.T) {
	out, err := CleanHTML(`<html><head><meta charset="utf-8"><title>t</title></head><body><p>Hi</p></body></html>`, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "<head")
	assert.NotContains(t, out, "<meta")
	assert.Contains(t, out, "<p>Hi</p>")
}

func TestCleanHTML_Truncation(t *testing.T) {
	var big strings.Builder
	big.WriteString("<body>")
	for i := 0; i < 1000; i++ {
		big.WriteString("<div>test</div>")
	}
	big.WriteString("</body>")

	cfg := DefaultCleanConfig
	cfg.MaxOutputSize = 1000
	out, err := CleanHTML(big.String(), &cfg)
	require.NoError(t, err)

	assert.Equal(t, 1000+len(truncatedMarker), len(out))
	assert.True(t, strings.HasSuffix(out, truncatedMarker))
}
