package reviewcontext

import "strings"

// BuildFileTree turns a flat list of file paths into a nested tree: path
// segments map to nested maps, files map to nil leaf markers.
func BuildFileTree(paths []string) map[string]any {
	tree := make(map[string]any)
	for _, path := range paths {
		parts := strings.Split(path, "/")
		current := tree
		for i, part := range parts {
			if part == "" {
				continue
			}
			if i == len(parts)-1 {
				current[part] = nil
				continue
			}
			next, ok := current[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
	}
	return tree
}
