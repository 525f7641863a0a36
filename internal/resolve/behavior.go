package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmmoran/elementgen/internal/model"
)

// ErrBehaviorCycle is matched by every *CycleError.
var ErrBehaviorCycle = errors.New("behavior cycle")

// CycleError reports a behavior that was reached again while it was still
// being flattened. Chain lists the behaviors from the first reference to the
// repeated one.
type CycleError struct {
	Item  string
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrBehaviorCycle, e.Item, strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Is(target error) bool { return target == ErrBehaviorCycle }

// Members is the flattened property/event surface of an item.
type Members struct {
	Properties []model.Property
	Events     []model.Event
}

// Resolver flattens behaviors into the elements that reference them.
type Resolver struct {
	registry *Registry
	log      *slog.Logger
}

func NewResolver(registry *Registry, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{registry: registry, log: log}
}

// Flatten computes the members of item merged with those of every behavior it
// references, transitively. The item itself is not modified. Own members come
// first; behavior members follow in reference order and are only added when no
// member of the same name is present yet.
func (r *Resolver) Flatten(item *model.Item) (Members, error) {
	out := Members{
		Properties: mergeProperties(nil, item.Properties),
		Events:     mergeEvents(nil, item.Events),
	}
	resolving := make(map[string]bool)
	for _, ref := range item.BehaviorRefs {
		nested, err := r.flattenBehavior(item.Name, ref, resolving, nil)
		if err != nil {
			return Members{}, err
		}
		out.Properties = mergeProperties(out.Properties, nested.Properties)
		out.Events = mergeEvents(out.Events, nested.Events)
	}
	return out, nil
}

// flattenBehavior resolves a behavior's own references first so a chain is
// fully merged before it reaches the consumer.
func (r *Resolver) flattenBehavior(owner, name string, resolving map[string]bool, chain []string) (Members, error) {
	chain = append(chain, name)
	if resolving[name] {
		return Members{}, &CycleError{Item: owner, Chain: append([]string(nil), chain...)}
	}
	behavior, ok := r.registry.Behavior(name)
	if !ok {
		r.log.With("item", owner, "behavior", name).Warn("behavior not found, skipping")
		return Members{}, nil
	}

	resolving[name] = true
	defer delete(resolving, name)

	acc := Members{
		Properties: mergeProperties(nil, behavior.Properties),
		Events:     mergeEvents(nil, behavior.Events),
	}
	for _, ref := range behavior.BehaviorRefs {
		nested, err := r.flattenBehavior(owner, ref, resolving, chain)
		if err != nil {
			return Members{}, err
		}
		acc.Properties = mergeProperties(acc.Properties, nested.Properties)
		acc.Events = mergeEvents(acc.Events, nested.Events)
	}
	return acc, nil
}

// Apply flattens an element in place. Behaviors are left untouched.
func (r *Resolver) Apply(item *model.Item) error {
	switch item.Kind {
	case model.KindBehavior:
		return nil
	case model.KindElement:
		m, err := r.Flatten(item)
		if err != nil {
			return err
		}
		item.Properties = m.Properties
		item.Events = m.Events
		return nil
	default:
		return fmt.Errorf("resolve %s: unknown item kind %d", item.Name, item.Kind)
	}
}

func mergeProperties(dst, src []model.Property) []model.Property {
	seen := make(map[string]bool, len(dst)+len(src))
	for _, p := range dst {
		seen[p.Name] = true
	}
	for _, p := range src {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		dst = append(dst, p)
	}
	return dst
}

// mergeEvents keys on the trimmed name, so "open" and "open (on success)"
// are the same event.
func mergeEvents(dst, src []model.Event) []model.Event {
	seen := make(map[string]bool, len(dst)+len(src))
	for _, e := range dst {
		seen[e.TrimName()] = true
	}
	for _, e := range src {
		if seen[e.TrimName()] {
			continue
		}
		seen[e.TrimName()] = true
		dst = append(dst, e)
	}
	return dst
}
