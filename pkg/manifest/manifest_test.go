package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, m.Current)
	assert.Nil(t, m.Previous)
	assert.Empty(t, m.Stale())
}

func TestLoadInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(p, []byte("current: [1, 2]"), 0o644))
	_, err := Load(p)
	require.Error(t, err)
}

func TestRecordSaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "manifest.yaml")

	m := &Manifest{}
	m.Record(Generation{Namespace: "com.vaadin.polymer", ModuleName: "Elements", Files: []Entry{
		{Path: "b/B.java", Template: "Element", Source: "B"},
		{Path: "a/A.java", Template: "Element", Source: "A"},
		{Path: "a/event/OldEvent.java", Template: "ElementEvent", Source: "A"},
	}})
	require.NoError(t, m.Save(p))

	loaded, err := Load(p)
	require.NoError(t, err)
	require.NotNil(t, loaded.Current)
	assert.Nil(t, loaded.Previous)
	assert.Equal(t, []string{"a/A.java", "a/event/OldEvent.java", "b/B.java"}, loaded.Current.Paths())
	assert.Equal(t, "a/A.java", loaded.Current.Files[0].Path)

	loaded.Record(Generation{Namespace: "com.vaadin.polymer", ModuleName: "Elements", Files: []Entry{
		{Path: "a/A.java"},
		{Path: "c/C.java"},
		{Path: "b/B.java"},
	}})
	require.NotNil(t, loaded.Previous)
	assert.Equal(t, []string{"a/event/OldEvent.java"}, loaded.Stale())
}
