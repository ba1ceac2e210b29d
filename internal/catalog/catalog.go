// Package catalog ranks remote-tracking branches by historical usage.
package catalog

import "sort"

// BranchItem pairs a remote branch short name with its usage count.
// Items are ephemeral and rebuilt on every invocation.
type BranchItem struct {
	// Name is the branch short name with the remote prefix stripped,
	// e.g. "feature/x" for origin/feature/x.
	Name string

	// Count is the number of times a branch was created from this one.
	Count uint64
}

// Counter resolves a usage count for a branch short name. Unknown names
// must resolve to 0.
type Counter interface {
	Count(name string) uint64
}

// Build joins branch short names with their usage counts and sorts them:
// count descending, then name ascending so equal counts order
// deterministically across runs.
func Build(names []string, counts Counter) []BranchItem {
	items := make([]BranchItem, 0, len(names))
	for _, name := range names {
		items = append(items, BranchItem{Name: name, Count: counts.Count(name)})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})

	return items
}
