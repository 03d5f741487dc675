package node

import "strings"

// SplitPath splits a slash-separated tree path into its components.
// Leading and trailing slashes are handled, empty components are removed.
//
// Examples:
//   - "" -> []string{}
//   - "a" -> []string{"a"}
//   - "a/b/c" -> []string{"a", "b", "c"}
func SplitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return []string{}
	}
	return strings.Split(path, "/")
}

// JoinPath joins tree path components with slashes, skipping empties.
func JoinPath(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

// JoinFilePath joins two filesystem path fragments with the platform-
// agnostic forward slash. Either side may be empty. A separator is
// inserted only when both sides are non-empty and left does not already
// end with one; a leading slash on right is kept as is.
func JoinFilePath(left, right string) string {
	res := left
	// guard the empty case before inspecting the last byte
	if res != "" && !strings.HasSuffix(res, "/") && right != "" {
		res += "/"
	}
	return res + right
}
