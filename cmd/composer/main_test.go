package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grcflow/notifcomposer/internal/domain"
	"github.com/grcflow/notifcomposer/pkg/render"
)

const sampleDocument = `[
	{"id":"h1","type":"header","content":"Nuevo riesgo: {{ nombre }}"},
	{"id":"v1","type":"variable","content":"severidad"},
	{"id":"b1","type":"button","content":"Ver riesgo"}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRender_TreeFormat(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDocument)

	out, err := execute(t, "", "render", path, "--channel", "in-app", "--theme", "dark")
	require.NoError(t, err)

	var tree render.Tree
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, render.ChannelInApp, tree.Channel)
	assert.Equal(t, render.ThemeDark, tree.Theme)
	assert.Len(t, tree.BlockNodes(), 3)
}

func TestRender_HTMLFromStdin(t *testing.T) {
	out, err := execute(t, sampleDocument, "render", "-", "--format", "html")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), "Ver riesgo")
	assert.NotContains(t, out, "{{")
}

func TestRender_RuleObjectWithContextFile(t *testing.T) {
	rule := `{"name":"Riesgos","emailBlocks":[{"id":"p","type":"paragraph","content":"Hola {{ nombre }}"}]}`
	rulePath := writeFile(t, "rule.json", rule)
	ctxPath := writeFile(t, "ctx.json", `{"nombre":"Fuga de datos"}`)

	out, err := execute(t, "", "render", rulePath, "--format", "text", "--context", ctxPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Hola Fuga de datos")
}

func TestRender_MJML(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDocument)

	out, err := execute(t, "", "render", path, "--format", "mjml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<mjml>"))

	_, err = execute(t, "", "render", path, "--format", "mjml", "--channel", "in-app")
	assert.ErrorContains(t, err, "only email trees")
}

func TestRender_Errors(t *testing.T) {
	path := writeFile(t, "doc.json", sampleDocument)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "bad channel", args: []string{"render", path, "--channel", "sms"}, wantErr: "unsupported channel"},
		{name: "bad theme", args: []string{"render", path, "--theme", "sepia"}, wantErr: "unsupported theme"},
		{name: "bad format", args: []string{"render", path, "--format", "pdf"}, wantErr: "unsupported format"},
		{name: "missing file", args: []string{"render", filepath.Join(t.TempDir(), "nope.json")}, wantErr: "failed to read"},
		{name: "no argument", args: []string{"render"}, wantErr: "accepts 1 arg"},
		{name: "bad log format", args: []string{"render", path, "--log-format", "xml"}, wantErr: "unsupported log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDecodeDocument(t *testing.T) {
	doc, err := decodeDocument([]byte(`{"emailBlocks":[{"id":"a","type":"divider"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())

	_, err = decodeDocument([]byte(`{"name":"x"}`))
	assert.ErrorContains(t, err, "emailBlocks")

	_, err = decodeDocument([]byte(`not json`))
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	out, err := execute(t, "", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "nombre")
	assert.Contains(t, out, "Responsable")

	out, err = execute(t, "", "catalog", "--json")
	require.NoError(t, err)
	var resp domain.CatalogResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.Entries)
}

func TestValidate(t *testing.T) {
	valid := `{
		"name": "Riesgos críticos",
		"entityType": "riesgo",
		"eventType": "created",
		"recipients": ["role:risk_manager"],
		"channels": ["email"],
		"severity": "high",
		"emailBlocks": [{"id":"a","type":"header","content":"Nuevo riesgo"},{"id":"b","type":"variable","content":"presupuesto"}]
	}`

	t.Run("ok with warnings", func(t *testing.T) {
		out, err := execute(t, valid, "validate", "-")
		require.NoError(t, err)
		assert.Contains(t, out, `warning: block b references unknown variable "presupuesto"`)
		assert.Contains(t, out, "ok:")
	})

	t.Run("strict", func(t *testing.T) {
		_, err := execute(t, valid, "validate", "-", "--strict")
		var validationErr domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
	})

	t.Run("invalid rule", func(t *testing.T) {
		_, err := execute(t, `{"name":"x","entityType":"riesgo"}`, "validate", "-")
		var validationErr domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Contains(t, err.Error(), "eventType is required")
	})
}
