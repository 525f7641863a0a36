package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/elementgen/internal/model"
	"github.com/cmmoran/elementgen/internal/resolve"
)

const paperButtonDoc = `{
  "elements": [
    {
      "tagname": "paper-button",
      "superclass": "Polymer.Element",
      "properties": [
        {"name": "raised", "type": "boolean", "privacy": "public"},
        {"name": "_private", "privacy": "private"}
      ],
      "methods": [{"name": "getRaised"}],
      "events": [{"name": "change (on toggle)"}],
      "behaviors": ["Polymer.PaperButtonBehavior"]
    }
  ],
  "metadata": {
    "polymer": {
      "behaviors": [
        {"name": "Polymer.PaperButtonBehavior", "properties": [{"name": "elevation", "privacy": "public"}]}
      ]
    }
  }
}`

const ironIconYaml = `
elements:
  - name: IronIcon
    tagname: iron-icon
    properties:
      - name: icon
        privacy: public
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestFileAnalyzer(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "paper-button/paper-button.json", paperButtonDoc)
	writeFile(t, root, "paper-button/bower.json", `{"name": "paper-button", "version": "2.0.0"}`)
	writeFile(t, root, "iron-icon/iron-icon.yaml", ironIconYaml)

	a := NewFileAnalyzer(root, nil)

	items, err := a.Analyze(context.Background(), "paper-button/paper-button.json")
	require.NoError(t, err)
	require.Len(t, items, 2)

	el := items[0]
	assert.Equal(t, model.KindElement, el.Kind)
	assert.Equal(t, "PaperButton", el.Name)
	assert.Equal(t, "paper-button/paper-button.json", el.Path)
	assert.Equal(t, "Polymer.Element", el.Superclass)
	assert.Equal(t, []string{"PaperButtonBehavior"}, el.BehaviorRefs)
	assert.Equal(t, "paper-button", el.Package.Name())
	require.Len(t, el.Events, 1)
	assert.Equal(t, "change", el.Events[0].TrimName())

	b := items[1]
	assert.Equal(t, model.KindBehavior, b.Kind)
	assert.Equal(t, "PaperButtonBehavior", b.Name)

	// absolute paths work too; missing descriptor gives an empty bag
	items, err = a.Analyze(context.Background(), filepath.Join(root, "iron-icon", "iron-icon.yaml"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "IronIcon", items[0].Name)
	assert.NotNil(t, items[0].Package)
	assert.Empty(t, items[0].Package.Name())
}

func TestFileAnalyzerBrokenInputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "x-bad/x-bad.json", `{"elements": [`)
	writeFile(t, root, "x-ok/x-ok.json", `{"elements": [{"tagname": "x-ok"}]}`)
	writeFile(t, root, "x-ok/bower.json", `not json`)
	writeFile(t, root, "x-ok/package.json", `{"name": "x-pkg"}`)

	a := NewFileAnalyzer(root, nil)

	_, err := a.Analyze(context.Background(), "x-bad/x-bad.json")
	require.Error(t, err)

	_, err = a.Analyze(context.Background(), "x-missing/x-missing.json")
	require.Error(t, err)

	items, err := a.Analyze(context.Background(), "x-ok/x-ok.json")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "x-pkg", items[0].Package.Name())
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"paper-button/paper-button.json",
		"paper-button/bower.json",
		"paper-button/demo.json",
		"paper-button/paper-button-index.json",
		"iron-icon/iron-icon.yaml",
		"iron-doc-viewer/iron-doc-viewer.json",
		"polymer/polymer.json",
		"web-animations-js/web-animations.json",
		"top-level.json",
		"deep/nested/file.json",
	} {
		writeFile(t, root, rel, "{}")
	}

	got, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"iron-icon/iron-icon.yaml",
		"paper-button/paper-button.json",
	}, got)
}

type fakeAnalyzer struct {
	mu    sync.Mutex
	calls []string
	items map[string][]*model.Item
}

func (f *fakeAnalyzer) Analyze(_ context.Context, p string) ([]*model.Item, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.mu.Unlock()
	items, ok := f.items[p]
	if !ok {
		return nil, errors.New("boom")
	}
	return items, nil
}

func TestCollect(t *testing.T) {
	fa := &fakeAnalyzer{items: map[string][]*model.Item{
		"a/a.json": {{Name: "A1"}, {Name: "A2"}, {Name: "A3"}},
		"b/b.json": {{Name: "B1"}},
		"c/c.json": {},
	}}
	reg := resolve.NewRegistry()

	stats := Collect(context.Background(), fa, []string{"a/a.json", "broken/x.json", "b/b.json", "c/c.json"}, 3, reg, nil)

	assert.Equal(t, Stats{Analyzed: 3, Failed: 1, Items: 4}, stats)
	assert.Len(t, fa.calls, 4)
	require.Equal(t, 4, reg.Len())

	var got []string
	for it := range reg.All() {
		got = append(got, it.Name)
	}
	// items of one file stay together and in order
	idx := map[string]int{}
	for i, n := range got {
		idx[n] = i
	}
	assert.Equal(t, idx["A1"]+1, idx["A2"])
	assert.Equal(t, idx["A2"]+1, idx["A3"])

	sort.Strings(got)
	assert.Equal(t, []string{"A1", "A2", "A3", "B1"}, got)
}

func TestCollectDefaultsWorkers(t *testing.T) {
	fa := &fakeAnalyzer{items: map[string][]*model.Item{"a/a.json": {{Name: "A"}}}}
	reg := resolve.NewRegistry()
	stats := Collect(context.Background(), fa, []string{"a/a.json"}, 0, reg, nil)
	assert.Equal(t, 1, stats.Analyzed)

	stats = Collect(context.Background(), fa, nil, 2, reg, nil)
	assert.Equal(t, Stats{}, stats)
}
