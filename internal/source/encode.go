package source

import (
	"github.com/tidwall/sjson"
)

// EncodeMapJSON shapes grid lines as {"map": [...]}.
func EncodeMapJSON(lines []string) ([]byte, error) {
	if lines == nil {
		lines = []string{}
	}
	return sjson.SetBytes([]byte(`{}`), "map", lines)
}

// EncodeErrorJSON shapes a failure as {"error": msg}.
func EncodeErrorJSON(msg string) ([]byte, error) {
	return sjson.SetBytes([]byte(`{}`), "error", msg)
}
