package utils

import (
	"strings"
)

func RefLength(src *string) int {
	if src == nil {
		return 0
	}
	return len(*src)
}

// SplitList splits a comma separated flag value, dropping empty entries.
func SplitList(src *string) []string {
	if RefLength(src) == 0 {
		return nil
	}
	items := []string{}
	for _, item := range strings.Split(*src, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
