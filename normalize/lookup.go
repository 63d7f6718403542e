// Package normalize pulls flight, hotel and schedule views out of planning
// backend responses whose shape has drifted between backend versions.
package normalize

// wrappers are the only keys descended into when a key is not found at the
// current level. Order matters: the first wrapper that yields a value wins.
var wrappers = []string{"data", "mcp_fetched_data", "raw_data", "result", "content"}

// Lookup is the result of a key search. The zero value means not found.
type Lookup struct {
	Value any
	Found bool
}

// NotFound is the empty lookup result.
var NotFound = Lookup{}

func found(v any) Lookup { return Lookup{Value: v, Found: true} }

// Map returns the value as a mapping when it is one.
func (l Lookup) Map() (map[string]any, bool) {
	if !l.Found {
		return nil, false
	}
	return asMap(l.Value)
}

// String returns the value when it is a string.
func (l Lookup) String() (string, bool) {
	if !l.Found {
		return "", false
	}
	s, ok := l.Value.(string)
	return s, ok
}

// Items returns the value as a list of records. A single non-empty mapping
// is wrapped into a one-element list.
func (l Lookup) Items() []any {
	if !l.Found {
		return nil
	}
	if items, ok := asSlice(l.Value); ok {
		return items
	}
	if m, ok := asMap(l.Value); ok && len(m) > 0 {
		return []any{m}
	}
	return nil
}

// FindDataKey searches root for key. A present, non-empty value directly in
// root wins; otherwise the known wrapper keys are searched depth first in
// fixed order. Sequences are never searched.
func FindDataKey(root any, key string) Lookup {
	m, ok := asMap(root)
	if !ok {
		return NotFound
	}
	if v, ok := m[key]; ok && !isEmpty(v) {
		return found(v)
	}
	for _, w := range wrappers {
		inner, ok := m[w]
		if !ok || isEmpty(inner) {
			continue
		}
		if l := FindDataKey(inner, key); l.Found {
			return l
		}
	}
	return NotFound
}

// MCPSource returns the part of the response holding enriched data:
// raw_data.mcp_fetched_data, then mcp_fetched_data, then the response itself.
func MCPSource(resp any) any {
	m, ok := asMap(resp)
	if !ok {
		return resp
	}
	if raw, ok := asMap(m["raw_data"]); ok {
		if mcp, ok := asMap(raw["mcp_fetched_data"]); ok && len(mcp) > 0 {
			return mcp
		}
	}
	if mcp, ok := asMap(m["mcp_fetched_data"]); ok && len(mcp) > 0 {
		return mcp
	}
	return resp
}
