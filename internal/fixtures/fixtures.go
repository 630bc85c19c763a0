// Package fixtures serves the embedded demo dataset used in offline
// mode. Everything is loaded once at first use and is immutable
// afterwards; accessors hand out copies so no caller can mutate the
// shared state.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/neoflix/neoflix-go/internal/params"
)

//go:embed data/*.json
var dataFS embed.FS

var (
	loadOnce sync.Once
	loadErr  error
	lists    map[string][]map[string]any
	singles  map[string]map[string]any
)

func load() {
	lists = make(map[string][]map[string]any)
	singles = make(map[string]map[string]any)

	entries, err := dataFS.ReadDir("data")
	if err != nil {
		loadErr = fmt.Errorf("failed to read fixture dir: %w", err)
		return
	}

	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		raw, err := dataFS.ReadFile("data/" + entry.Name())
		if err != nil {
			loadErr = fmt.Errorf("failed to read fixture %s: %w", name, err)
			return
		}

		var list []map[string]any
		if err := json.Unmarshal(raw, &list); err == nil {
			lists[name] = list
			continue
		}

		var single map[string]any
		if err := json.Unmarshal(raw, &single); err != nil {
			loadErr = fmt.Errorf("fixture %s is neither a list nor an object: %w", name, err)
			return
		}
		singles[name] = single
	}
}

// List returns a copy of the named fixture list.
func List(name string) ([]map[string]any, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}

	list, ok := lists[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture list %q", name)
	}

	out := make([]map[string]any, len(list))
	for i, m := range list {
		out[i] = copyMap(m)
	}
	return out, nil
}

// Single returns a copy of the named single-record fixture.
func Single(name string) (map[string]any, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}

	m, ok := singles[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture %q", name)
	}
	return copyMap(m), nil
}

// Process applies the pagination/sort contract to an in-memory list: the
// same sort key, direction, skip and limit semantics the graph queries
// use, applied to fixture data.
func Process(list []map[string]any, p params.Params) []map[string]any {
	out := make([]map[string]any, len(list))
	copy(out, list)

	key := string(p.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareValues(out[i][key], out[j][key])
		if p.Order == params.OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	if p.Skip >= len(out) {
		return []map[string]any{}
	}
	out = out[p.Skip:]

	if p.Limit < len(out) {
		out = out[:p.Limit]
	}
	return out
}

// compareValues orders fixture values of the same JSON type; absent
// values sort before present ones.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return 0
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return copyMap(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
