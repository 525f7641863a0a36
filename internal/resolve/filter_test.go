package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmmoran/elementgen/internal/model"
)

func TestFilterProperties(t *testing.T) {
	in := []model.Property{
		{Name: "label", Privacy: model.PrivacyPublic},
		{Name: "root", Privacy: model.PrivacyPublic},
		{Name: "_cache", Privacy: model.PrivacyPrivate},
		{Name: "rootPath", Privacy: model.PrivacyPublic},
		{Name: "disabled", Privacy: model.PrivacyPublic},
		{Name: "importPath", Privacy: model.PrivacyPublic},
		{Name: "internal", Privacy: model.PrivacyProtected},
		{Name: "$", Privacy: model.PrivacyPublic},
		{Name: "unknown"},
		{Name: "value", Privacy: model.PrivacyPublic},
	}

	got := FilterProperties(in)
	assert.Equal(t, []string{"label", "disabled", "value"}, propNames(got))
	assert.Len(t, in, 10)
}

func TestFilterItem(t *testing.T) {
	it := &model.Item{Properties: []model.Property{
		{Name: "$", Privacy: model.PrivacyPublic},
		{Name: "opened", Privacy: model.PrivacyPublic},
	}}
	FilterItem(it)
	assert.Equal(t, []string{"opened"}, propNames(it.Properties))

	empty := &model.Item{}
	FilterItem(empty)
	assert.Empty(t, empty.Properties)
}
