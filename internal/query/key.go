package query

import (
	"strings"

	"github.com/spf13/cast"
)

// Key identifies one cached read: an operation tag plus its parameters.
type Key struct {
	Tag    string
	Params []any
}

func NewKey(tag string, params ...any) Key {
	return Key{Tag: tag, Params: params}
}

func (k Key) String() string {
	parts := make([]string, 0, len(k.Params)+1)
	parts = append(parts, k.Tag)
	for _, p := range k.Params {
		parts = append(parts, cast.ToString(p))
	}
	return strings.Join(parts, "/")
}

// matches reports whether prefix selects the key, segment-wise:
// "products" selects "products/2" but not "productsArchive/2".
func matches(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+"/")
}
