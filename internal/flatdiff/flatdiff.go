// Package flatdiff compares nested key/value trees by flattening them into
// dotted-path leaves.
//
// A tree is a map[string]any whose values are scalars, lists or nested trees.
// Lists are leaves. Keys that contain the separator are escaped with a
// backslash when flattened and unescaped by Unflatten, so
// Unflatten(Flatten(t, sep), sep) reproduces t for every tree. An empty
// nested tree is kept as a leaf holding an empty map.
package flatdiff

import (
	"sort"
	"strings"
)

// Separator is the default path separator.
const Separator = "."

const escape = `\`

// Flatten turns a nested tree into a map from separator-joined key paths to
// leaf values.
func Flatten(tree map[string]any, sep string) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, tree, "", true, sep)
	return flat
}

// flattenInto joins below the root even when prefix is empty, so that an
// empty key keeps its own path segment.
func flattenInto(flat map[string]any, tree map[string]any, prefix string, atRoot bool, sep string) {
	for key, value := range tree {
		path := escapeKey(key, sep)
		if !atRoot {
			path = prefix + sep + path
		}
		if nested, ok := value.(map[string]any); ok && len(nested) > 0 {
			flattenInto(flat, nested, path, false, sep)
			continue
		}
		flat[path] = value
	}
}

// Unflatten rebuilds the nested tree from a flattened one. When two paths
// collide (one is a prefix of the other) the longer path wins.
func Unflatten(flat map[string]any, sep string) map[string]any {
	tree := make(map[string]any)
	for _, path := range SortedKeys(flat) {
		keys := splitPath(path, sep)
		node := tree
		for _, k := range keys[:len(keys)-1] {
			child, ok := node[k].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[k] = child
			}
			node = child
		}
		last := keys[len(keys)-1]
		if existing, ok := node[last].(map[string]any); ok && len(existing) > 0 {
			continue
		}
		node[last] = flat[path]
	}
	return tree
}

// Missing returns, as a nested tree, every leaf of expected that actual does
// not hold with an equal value. A leaf whose key exists in actual with a
// different value counts as missing and carries the expected value. The
// result is empty when expected's leaves are a subset of actual's.
func Missing(expected, actual map[string]any) map[string]any {
	want := Flatten(expected, Separator)
	have := Flatten(actual, Separator)

	missing := make(map[string]any)
	for path, value := range want {
		if empty, ok := value.(map[string]any); ok && len(empty) == 0 {
			if isTable(actual, splitPath(path, Separator)) {
				continue
			}
		}
		if got, ok := have[path]; ok && Equal(got, value) {
			continue
		}
		missing[path] = value
	}
	return Unflatten(missing, Separator)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isTable(tree map[string]any, keys []string) bool {
	var node any = tree
	for _, k := range keys {
		m, ok := node.(map[string]any)
		if !ok {
			return false
		}
		if node, ok = m[k]; !ok {
			return false
		}
	}
	_, ok := node.(map[string]any)
	return ok
}

func escapeKey(key, sep string) string {
	key = strings.ReplaceAll(key, escape, escape+escape)
	return strings.ReplaceAll(key, sep, escape+sep)
}

// splitPath splits on separators that are not escaped and unescapes each part.
func splitPath(path, sep string) []string {
	var parts []string
	var b strings.Builder
	for i := 0; i < len(path); {
		switch {
		case strings.HasPrefix(path[i:], escape) && i+len(escape) < len(path):
			i += len(escape)
			if strings.HasPrefix(path[i:], sep) {
				b.WriteString(sep)
				i += len(sep)
			} else {
				b.WriteByte(path[i])
				i++
			}
		case strings.HasPrefix(path[i:], sep):
			parts = append(parts, b.String())
			b.Reset()
			i += len(sep)
		default:
			b.WriteByte(path[i])
			i++
		}
	}
	return append(parts, b.String())
}
