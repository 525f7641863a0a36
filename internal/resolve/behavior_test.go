package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/elementgen/internal/model"
)

func pubProp(name string) model.Property {
	return model.Property{Name: name, Privacy: model.PrivacyPublic}
}

func event(name string) model.Event {
	return model.Event{Name: name}
}

func behavior(name string, props []string, events []string, refs ...string) *model.Item {
	b := &model.Item{Kind: model.KindBehavior, Name: name, BehaviorRefs: refs}
	for _, p := range props {
		b.Properties = append(b.Properties, pubProp(p))
	}
	for _, e := range events {
		b.Events = append(b.Events, event(e))
	}
	return b
}

func propNames(props []model.Property) []string {
	var out []string
	for _, p := range props {
		out = append(out, p.Name)
	}
	return out
}

func eventNames(events []model.Event) []string {
	var out []string
	for _, e := range events {
		out = append(out, e.Name)
	}
	return out
}

func TestResolverApply(t *testing.T) {
	tests := []struct {
		name       string
		behaviors  []*model.Item
		element    *model.Item
		wantProps  []string
		wantEvents []string
	}{
		{
			name:      "no behaviors",
			element:   &model.Item{Name: "PaperButton", Properties: []model.Property{pubProp("raised")}},
			wantProps: []string{"raised"},
		},
		{
			name: "single behavior appended after own members",
			behaviors: []*model.Item{
				behavior("IronButtonState", []string{"pressed", "active"}, []string{"change"}),
			},
			element: &model.Item{
				Name:         "PaperButton",
				Properties:   []model.Property{pubProp("raised")},
				BehaviorRefs: []string{"IronButtonState"},
			},
			wantProps:  []string{"raised", "pressed", "active"},
			wantEvents: []string{"change"},
		},
		{
			name: "own members shadow behavior members",
			behaviors: []*model.Item{
				behavior("IronOverlay", []string{"opened", "modal"}, []string{"open", "close"}),
			},
			element: &model.Item{
				Name:         "PaperDialog",
				Properties:   []model.Property{pubProp("opened")},
				Events:       []model.Event{{Name: "open", Description: "own"}},
				BehaviorRefs: []string{"IronOverlay"},
			},
			wantProps:  []string{"opened", "modal"},
			wantEvents: []string{"open", "close"},
		},
		{
			name: "behavior event with annotated name shadowed by own event",
			behaviors: []*model.Item{
				behavior("IronOverlay", nil, []string{"open (on success)", "close"}),
			},
			element: &model.Item{
				Name:         "PaperDialog",
				Events:       []model.Event{{Name: "open"}},
				BehaviorRefs: []string{"IronOverlay"},
			},
			wantEvents: []string{"open", "close"},
		},
		{
			name: "nested chain flattened depth first",
			behaviors: []*model.Item{
				behavior("A", []string{"a"}, []string{"ea"}, "B"),
				behavior("B", []string{"b"}, []string{"eb"}, "C"),
				behavior("C", []string{"c"}, nil),
				behavior("D", []string{"d"}, nil),
			},
			element: &model.Item{
				Name:         "E",
				BehaviorRefs: []string{"A", "D"},
			},
			wantProps:  []string{"a", "b", "c", "d"},
			wantEvents: []string{"ea", "eb"},
		},
		{
			name: "diamond is not a cycle",
			behaviors: []*model.Item{
				behavior("Left", []string{"left"}, nil, "Shared"),
				behavior("Right", []string{"right"}, nil, "Shared"),
				behavior("Shared", []string{"shared"}, []string{"tap"}),
			},
			element: &model.Item{
				Name:         "E",
				BehaviorRefs: []string{"Left", "Right"},
			},
			wantProps:  []string{"left", "shared", "right"},
			wantEvents: []string{"tap"},
		},
		{
			name: "missing behavior skipped",
			behaviors: []*model.Item{
				behavior("Known", []string{"known"}, nil),
			},
			element: &model.Item{
				Name:         "E",
				BehaviorRefs: []string{"Unknown", "Known"},
			},
			wantProps: []string{"known"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			reg.Add(tt.behaviors...)
			reg.Add(tt.element)

			r := NewResolver(reg, nil)
			require.NoError(t, r.Apply(tt.element))
			assert.Equal(t, tt.wantProps, propNames(tt.element.Properties))
			assert.Equal(t, tt.wantEvents, eventNames(tt.element.Events))
		})
	}
}

func TestResolverApplyIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Add(
		behavior("A", []string{"a", "shared"}, []string{"open"}, "B"),
		behavior("B", []string{"b"}, []string{"close"}),
	)
	el := &model.Item{
		Name:         "E",
		Properties:   []model.Property{pubProp("shared")},
		BehaviorRefs: []string{"A"},
	}
	reg.Add(el)
	r := NewResolver(reg, nil)

	require.NoError(t, r.Apply(el))
	once := el.Clone()
	require.NoError(t, r.Apply(el))

	assert.Equal(t, once.Properties, el.Properties)
	assert.Equal(t, once.Events, el.Events)
}

func TestResolverKeepsOwnEvent(t *testing.T) {
	reg := NewRegistry()
	reg.Add(behavior("B", nil, []string{"open"}))
	el := &model.Item{
		Name:         "E",
		Events:       []model.Event{{Name: "open", Description: "element open"}},
		BehaviorRefs: []string{"B"},
	}
	require.NoError(t, NewResolver(reg, nil).Apply(el))
	require.Len(t, el.Events, 1)
	assert.Equal(t, "element open", el.Events[0].Description)
}

func TestResolverLeavesBehaviorsAlone(t *testing.T) {
	reg := NewRegistry()
	inner := behavior("Inner", []string{"inner"}, nil)
	outer := behavior("Outer", []string{"outer"}, nil, "Inner")
	reg.Add(inner, outer)

	require.NoError(t, NewResolver(reg, nil).Apply(outer))
	assert.Equal(t, []string{"outer"}, propNames(outer.Properties))
}

func TestResolverFlattenIsPure(t *testing.T) {
	reg := NewRegistry()
	reg.Add(behavior("B", []string{"b"}, nil))
	el := &model.Item{Name: "E", Properties: []model.Property{pubProp("e")}, BehaviorRefs: []string{"B"}}

	m, err := NewResolver(reg, nil).Flatten(el)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "b"}, propNames(m.Properties))
	assert.Equal(t, []string{"e"}, propNames(el.Properties))
}

func TestResolverCycle(t *testing.T) {
	tests := []struct {
		name      string
		behaviors []*model.Item
		refs      []string
		wantChain []string
	}{
		{
			name: "two step",
			behaviors: []*model.Item{
				behavior("A", []string{"a"}, nil, "B"),
				behavior("B", []string{"b"}, nil, "A"),
			},
			refs:      []string{"A"},
			wantChain: []string{"A", "B", "A"},
		},
		{
			name: "self reference",
			behaviors: []*model.Item{
				behavior("A", nil, nil, "A"),
			},
			refs:      []string{"A"},
			wantChain: []string{"A", "A"},
		},
		{
			name: "cycle below a healthy behavior",
			behaviors: []*model.Item{
				behavior("Ok", nil, nil),
				behavior("X", nil, nil, "Y"),
				behavior("Y", nil, nil, "Z"),
				behavior("Z", nil, nil, "Y"),
			},
			refs:      []string{"Ok", "X"},
			wantChain: []string{"X", "Y", "Z", "Y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			reg.Add(tt.behaviors...)
			el := &model.Item{Name: "E", Properties: []model.Property{pubProp("e")}, BehaviorRefs: tt.refs}

			err := NewResolver(reg, nil).Apply(el)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBehaviorCycle))

			var ce *CycleError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "E", ce.Item)
			assert.Equal(t, tt.wantChain, ce.Chain)
			// item untouched on failure
			assert.Equal(t, []string{"e"}, propNames(el.Properties))
		})
	}
}
