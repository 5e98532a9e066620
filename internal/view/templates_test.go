package view

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin_console/web"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layout.html":         {Data: []byte(`{{define "layout"}}<main>{{template "title" .}}{{template "content" .}}</main>{{end}}`)},
		"partials/title.html": {Data: []byte(`{{define "title"}}<h1>{{.Heading}}</h1>{{end}}`)},
		"login.html":          {Data: []byte(`{{template "title" .}}<form></form>`)},
		"pages/tax.html":      {Data: []byte(`{{define "content"}}{{range $i, $r := .Rows}}<p>{{inc $i}}:{{$r}}</p>{{end}}{{end}}`)},
		"pages/report.html":   {Data: []byte(`{{define "content"}}report{{end}}`)},
	}
}

func renderPage(t *testing.T, tm *TemplateManager, name string, data any) string {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, tm.Instance(name, data).Render(w))
	return w.Body.String()
}

func TestLoadTemplates_PagesUseLayout(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.LoadTemplates(testFS()))

	assert.ElementsMatch(t, []string{"login", "tax", "report"}, tm.TemplateNames())

	out := renderPage(t, tm, "tax", map[string]any{"Heading": "Tax", "Rows": []string{"a", "b"}})
	assert.Equal(t, "<main><h1>Tax</h1><p>1:a</p><p>2:b</p></main>", out)

	// у каждой страницы свой "content"
	assert.Equal(t, "<main><h1>R</h1>report</main>", renderPage(t, tm, "report", map[string]any{"Heading": "R"}))
}

func TestLoadTemplates_StandaloneWithoutLayout(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.LoadTemplates(testFS()))

	assert.Equal(t, "<h1>Connexion</h1><form></form>", renderPage(t, tm, "login", map[string]any{"Heading": "Connexion"}))
}

func TestInstance_UnknownTemplate(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.LoadTemplates(testFS()))

	assert.Equal(t, `template "missing" not found`, renderPage(t, tm, "missing", nil))
}

func TestLoadTemplates_EmbeddedConsole(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.LoadTemplates(web.Templates()))

	for _, name := range []string{"login", "error", "customers", "customer_detail", "confirm", "reports", "report_detail", "cms", "subscription", "tax", "setting"} {
		assert.NotNil(t, tm.GetTemplate(name), name)
	}
}
