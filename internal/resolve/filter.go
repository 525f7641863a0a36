package resolve

import "github.com/cmmoran/elementgen/internal/model"

// reservedProperties are framework internals never exposed by wrappers.
var reservedProperties = map[string]bool{
	"root":       true,
	"rootPath":   true,
	"importPath": true,
	"$":          true,
}

// FilterProperties keeps public, non-reserved properties in their input order.
func FilterProperties(props []model.Property) []model.Property {
	out := make([]model.Property, 0, len(props))
	for _, p := range props {
		if reservedProperties[p.Name] || p.Privacy != model.PrivacyPublic {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterItem replaces the item's properties with the filtered set.
func FilterItem(item *model.Item) {
	item.Properties = FilterProperties(item.Properties)
}
