package common

import (
	"fmt"
	"strings"
)

func RedisKeyProductSearch(query string, start, display int, sort string) string {
	return fmt.Sprintf("productsearch:%s:%d:%d:%s", strings.ToLower(strings.TrimSpace(query)), start, display, sort)
}
