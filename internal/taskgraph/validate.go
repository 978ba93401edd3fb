package taskgraph

import (
	"sort"
)

// Validate checks a parsed document for duplicate task ids, dangling
// dependency references, and dependency cycles. Errors are deterministic:
// traversal order is always by sorted id, regardless of document order.
func Validate(doc *Document) error {
	ids := make(map[string]bool, len(doc.Tasks))
	sorted := make([]TaskSpec, len(doc.Tasks))
	copy(sorted, doc.Tasks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, t := range sorted {
		if ids[t.ID] {
			return &DuplicateIDError{ID: t.ID}
		}
		ids[t.ID] = true
	}

	adjacency := make(map[string][]string, len(doc.Tasks))
	for _, t := range sorted {
		deps := make([]string, len(t.Deps))
		copy(deps, t.Deps)
		sort.Strings(deps)
		for _, dep := range deps {
			if !ids[dep] {
				return &DanglingDependencyError{TaskID: t.ID, DepID: dep}
			}
		}
		adjacency[t.ID] = deps
	}

	color := make(map[string]int, len(ids))
	var path []string

	var dfs func(id string) error
	dfs = func(id string) error {
		color[id] = 1
		path = append(path, id)

		for _, dep := range adjacency[id] {
			if color[dep] == 1 {
				cycleStart := -1
				for i, n := range path {
					if n == dep {
						cycleStart = i
						break
					}
				}
				cyclePath := append(append([]string{}, path[cycleStart:]...), dep)
				return &CycleError{Path: cyclePath}
			}
			if color[dep] == 0 {
				if err := dfs(dep); err != nil {
					return err
				}
			}
		}

		path = path[:len(path)-1]
		color[id] = 2
		return nil
	}

	allIDs := make([]string, 0, len(ids))
	for id := range ids {
		allIDs = append(allIDs, id)
	}
	sort.Strings(allIDs)

	for _, id := range allIDs {
		if color[id] == 0 {
			if err := dfs(id); err != nil {
				return err
			}
		}
	}
	return nil
}
