package proc

import (
	"sort"

	"github.com/pranshuparmar/procdump/pkg/model"
)

// BuildTree flattens processes into a depth-first tree with box drawing
// prefixes. The entry for focus is marked. With focusOnly set, only the
// ancestors and descendants of focus are kept.
func BuildTree(processes []model.ProcessSummary, focus int, focusOnly bool) []model.TreeEntry {
	procMap := make(map[int]model.ProcessSummary, len(processes))
	for _, p := range processes {
		procMap[p.PID] = p
	}
	children := make(map[int][]int)
	var roots []int
	for _, p := range processes {
		if _, hasParent := procMap[p.PPID]; !hasParent || p.PPID == p.PID {
			roots = append(roots, p.PID)
			continue
		}
		children[p.PPID] = append(children[p.PPID], p.PID)
	}
	for _, kids := range children {
		sort.Ints(kids)
	}
	sort.Ints(roots)

	var keep map[int]bool
	if focusOnly {
		keep = focusSet(procMap, children, focus)
	}

	var out []model.TreeEntry
	var walk func(pid, depth int, indent string, last bool)
	walk = func(pid, depth int, indent string, last bool) {
		if keep != nil && !keep[pid] {
			return
		}
		prefix := ""
		childIndent := ""
		if depth > 0 {
			if last {
				prefix = indent + "└─ "
				childIndent = indent + "   "
			} else {
				prefix = indent + "├─ "
				childIndent = indent + "│  "
			}
		}
		out = append(out, model.TreeEntry{
			ProcessSummary: procMap[pid],
			Depth:          depth,
			Prefix:         prefix,
			Focus:          pid == focus,
		})

		kids := children[pid]
		if keep != nil {
			var kept []int
			for _, k := range kids {
				if keep[k] {
					kept = append(kept, k)
				}
			}
			kids = kept
		}
		for i, kid := range kids {
			walk(kid, depth+1, childIndent, i == len(kids)-1)
		}
	}

	for _, root := range roots {
		walk(root, 0, "", true)
	}
	return out
}

func focusSet(procMap map[int]model.ProcessSummary, children map[int][]int, focus int) map[int]bool {
	keep := make(map[int]bool)
	if _, ok := procMap[focus]; !ok {
		return keep
	}
	for cur := focus; ; {
		if keep[cur] {
			break
		}
		keep[cur] = true
		p, ok := procMap[cur]
		if !ok {
			break
		}
		if _, ok := procMap[p.PPID]; !ok {
			break
		}
		cur = p.PPID
	}
	stack := append([]int(nil), children[focus]...)
	for len(stack) > 0 {
		pid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if keep[pid] {
			continue
		}
		keep[pid] = true
		stack = append(stack, children[pid]...)
	}
	return keep
}
