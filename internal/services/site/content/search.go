package content

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

const imageBase = "https://res.cloudinary.com/dby6mmmff/image/upload"

// Categories returns the distinct categories across items, sorted.
func Categories(items []HardwareItem) []string {
	set := make(map[string]struct{})
	for _, item := range items {
		for _, category := range item.Categories {
			set[category] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for category := range set {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// FilterHardware returns the items whose name, description or a category
// contains query (case-insensitive) and that carry at least one of the
// selected categories. Empty query and empty selection match everything.
func FilterHardware(items []HardwareItem, query string, selected []string) []HardwareItem {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]HardwareItem, 0, len(items))
	for _, item := range items {
		if !matchesQuery(item, needle) || !matchesCategories(item, selected) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item HardwareItem, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle) {
		return true
	}
	for _, category := range item.Categories {
		if strings.Contains(strings.ToLower(category), needle) {
			return true
		}
	}
	return false
}

func matchesCategories(item HardwareItem, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, category := range selected {
		if slices.Contains(item.Categories, category) {
			return true
		}
	}
	return false
}

// ImageURL returns a sized CDN URL for a Cloudinary public id.
func ImageURL(publicID string, width int) string {
	publicID = strings.Trim(strings.TrimSpace(publicID), "/")
	if publicID == "" {
		return ""
	}
	if width <= 0 {
		return fmt.Sprintf("%s/f_auto,q_auto/%s", imageBase, publicID)
	}
	return fmt.Sprintf("%s/f_auto,q_auto,w_%d/%s", imageBase, width, publicID)
}
