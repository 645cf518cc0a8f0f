package cache

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"sort"
	"strings"
)

// Key builds the composite cache key for a GET request: the project identity
// scopes the namespace, the endpoint path keeps keys readable, and an FNV-1a
// hash over the canonically ordered parameters keeps distinct queries apart.
func Key(projectID, path string, params url.Values) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))
	_, _ = h.Write([]byte("|"))

	if len(params) > 0 {
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			values := append([]string(nil), params[name]...)
			sort.Strings(values)
			parts = append(parts, name+"="+strings.Join(values, ","))
		}
		_, _ = h.Write([]byte(strings.Join(parts, "&")))
	}

	return fmt.Sprintf("%s:%s:%016x", projectID, strings.Trim(path, "/"), h.Sum64())
}
