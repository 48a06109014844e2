package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/agentic-research/resolvecfg/api"
)

const testConfig = `const path = require('path')

const config = {
  projectName: 'demo',
  sass: {
    resource: [path.resolve(__dirname, '..', 'src/styles/theme.scss')],
  },
  defineConstants: {
    __API: JSON.stringify('https://example.test'),
  },
  copy: {
    patterns: [{ from: 'src/static', to: 'dist/static' }],
  },
}

module.exports = function (merge) {
  return merge({}, config)
}
`

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestResolveCmd_JSON(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "config/index.js", testConfig)

	stdout, _, err := runCLI(t, "resolve", src, "--project", "weapp", "--sass", "src/app.scss", "--workdir", dir)
	require.NoError(t, err)

	parsed, err := oj.ParseString(stdout)
	require.NoError(t, err)
	m := parsed.(map[string]any)

	assert.Equal(t, []any{"path", "process"}, m["requires"])
	assert.Equal(t,
		`[path.join(process.cwd(), "src/app.scss"), path.join(process.cwd(), "/src/styles/theme.scss")]`,
		m["resource"])
	assert.Equal(t, "[{\n  from: \"src/static\",\n  to: \"dist-weapp/static\"\n}]", m["patterns"])
	assert.Equal(t,
		"{\n  __API: JSON.stringify(\"https://example.test\"),\n  __PROJECT: JSON.stringify(\"weapp\")\n}",
		m["defineConstants"])
}

func TestResolveCmd_Select(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "config/index.js", testConfig)

	stdout, _, err := runCLI(t, "resolve", src, "-p", "weapp", "--sass", "/a.scss", "--workdir", dir, "--select", "$.patterns")
	require.NoError(t, err)
	assert.Equal(t, "[{\n  from: \"src/static\",\n  to: \"dist-weapp/static\"\n}]\n", stdout)
}

func TestResolveCmd_OptionsFile(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "config/index.js", testConfig)
	opts := writeTemp(t, dir, "resolvecfg.hcl", `
project = "alipay"
sass    = "/from-file.scss"
`)

	stdout, _, err := runCLI(t, "resolve", src, "--options", opts, "--project", "h5", "--workdir", dir, "--select", "$.defineConstants")
	require.NoError(t, err)
	assert.Contains(t, stdout, `__PROJECT: JSON.stringify("h5")`)

	stdout, _, err = runCLI(t, "resolve", src, "--options", opts, "--workdir", dir, "--select", "$.resource")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"/from-file.scss"`)
}

func TestResolveCmd_EmitJSToFile(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "config/index.js", testConfig)
	out := filepath.Join(dir, "gen", "buildcfg.js")

	stdout, _, err := runCLI(t, "resolve", src, "-p", "weapp", "--sass", "/a.scss", "--workdir", dir, "--emit", "js", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), `const path = require("path");`)
	assert.Contains(t, string(got), "module.exports = {")
}

func TestResolveCmd_EmitGo(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "config/index.js", testConfig)

	stdout, _, err := runCLI(t, "resolve", src, "-p", "weapp", "--sass", "/a.scss", "--workdir", dir, "--emit", "go", "--package", "weappcfg")
	require.NoError(t, err)
	assert.Contains(t, stdout, "package weappcfg")
}

func TestResolveCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "config/index.js", testConfig)
	broken := writeTemp(t, dir, "config/broken.js", "const config = {\n  copy: [\n")

	_, _, err := runCLI(t, "resolve", src, "--sass", "/a.scss")
	assert.True(t, errors.Is(err, api.ErrInvalidOptions))

	_, _, err = runCLI(t, "resolve", src, "-p", "weapp", "--sass", "/a.scss", "--emit", "yaml")
	assert.Error(t, err)

	_, _, err = runCLI(t, "resolve", filepath.Join(dir, "missing.js"), "-p", "weapp", "--sass", "/a.scss")
	assert.Error(t, err)

	_, stderr, err := runCLI(t, "resolve", broken, "-p", "weapp", "--sass", "/a.scss")
	assert.Error(t, err)
	assert.Contains(t, stderr, "broken.js")

	_, _, err = runCLI(t, "resolve", src, "-p", "weapp", "--sass", "/a.scss", "--log-level", "loud")
	assert.Error(t, err)
}
