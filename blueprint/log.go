package blueprint

import (
	"fmt"

	"github.com/robert-malhotra/go-meshdata/node"
)

// The verify info tree mirrors the verified tree. At each inspected node
// it accumulates message lists ("errors", "info", "optional") and a
// final "valid" marker.

func logError(info *node.Node, protocol, msg string) {
	info.Fetch("errors").Append().SetString(fmt.Sprintf("%s: %s", protocol, msg))
}

func logInfo(info *node.Node, protocol, msg string) {
	info.Fetch("info").Append().SetString(fmt.Sprintf("%s: %s", protocol, msg))
}

func logOptional(info *node.Node, protocol, msg string) {
	info.Fetch("optional").Append().SetString(fmt.Sprintf("%s: %s", protocol, msg))
}

func logValidation(info *node.Node, ok bool) {
	if ok {
		info.Fetch("valid").SetString("true")
	} else {
		info.Fetch("valid").SetString("false")
	}
}

func quote(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("'%s' ", s)
}
