package node

import "strconv"

// WalkFunc is called for each node during traversal. path is the
// slash-separated path from the walk root ("" for the root itself).
// Return a non-nil error to stop the walk.
type WalkFunc func(path string, n *Node) error

// Walk traverses n and all of its descendants in depth-first insertion
// order, calling fn for every node including n itself.
func Walk(n *Node, fn WalkFunc) error {
	return walkNode(n, "", fn)
}

func walkNode(n *Node, path string, fn WalkFunc) error {
	if err := fn(path, n); err != nil {
		return err
	}
	for i, c := range n.children {
		childPath := c.name
		if n.dtype.Kind == List {
			childPath = listChildLabel(i)
		}
		if path != "" {
			childPath = path + "/" + childPath
		}
		if err := walkNode(c, childPath, fn); err != nil {
			return err
		}
	}
	return nil
}

// list children have no names; label by position for diagnostics.
func listChildLabel(i int) string {
	return strconv.Itoa(i)
}
