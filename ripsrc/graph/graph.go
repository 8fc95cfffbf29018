// Package graph keeps parent links of commits and derives generation numbers from them.
package graph

import (
	"fmt"
	"sort"
)

// Graph represents the graph of commits in repo.
type Graph struct {
	// Parents is map[commit]parents, parents in commit order.
	Parents map[string][]string
	// Children is map[commit]children, sorted.
	Children map[string][]string
}

func New() *Graph {
	s := &Graph{}
	s.Parents = map[string][]string{}
	s.Children = map[string][]string{}
	return s
}

// Add records commit with its parents. Parents do not need to be added before children.
func (s *Graph) Add(commit string, parents ...string) {
	s.Parents[commit] = append([]string(nil), parents...)
	if _, ok := s.Children[commit]; !ok {
		// make sure that even if commit does not have any children we have a map key for it
		s.Children[commit] = nil
	}
	for _, p := range parents {
		s.Children[p] = append(s.Children[p], commit)
		sort.Strings(s.Children[p])
	}
}

// Generations returns generation number for every commit. Roots have generation 1, other commits 1 + max generation of parents.
// Returns error if a parent was never added or the graph has a cycle.
func (s *Graph) Generations() (map[string]int64, error) {
	res := map[string]int64{}
	inProgress := map[string]bool{}

	type frame struct {
		commit string
		next   int
	}

	commits := make([]string, 0, len(s.Parents))
	for c := range s.Parents {
		commits = append(commits, c)
	}
	sort.Strings(commits)

	for _, c := range commits {
		if _, ok := res[c]; ok {
			continue
		}
		stack := []frame{{commit: c}}
		inProgress[c] = true
		for len(stack) != 0 {
			top := &stack[len(stack)-1]
			parents, ok := s.Parents[top.commit]
			if !ok {
				return nil, fmt.Errorf("commit %v is referenced as parent but was not added", top.commit)
			}
			if top.next < len(parents) {
				p := parents[top.next]
				top.next++
				if _, ok := res[p]; ok {
					continue
				}
				if inProgress[p] {
					return nil, fmt.Errorf("cycle detected at commit %v", p)
				}
				inProgress[p] = true
				stack = append(stack, frame{commit: p})
				continue
			}
			var gen int64
			for _, p := range parents {
				if res[p] > gen {
					gen = res[p]
				}
			}
			res[top.commit] = gen + 1
			delete(inProgress, top.commit)
			stack = stack[:len(stack)-1]
		}
	}
	return res, nil
}

// Edge is a link from child commit to one of its parents.
type Edge struct {
	Child  string
	Parent string
}

// NonMonotonic returns edges where parent has larger key than child. Commits without key are skipped.
func (s *Graph) NonMonotonic(keys map[string]int64) (res []Edge) {
	commits := make([]string, 0, len(s.Parents))
	for c := range s.Parents {
		commits = append(commits, c)
	}
	sort.Strings(commits)
	for _, c := range commits {
		ck, ok := keys[c]
		if !ok {
			continue
		}
		for _, p := range s.Parents[c] {
			pk, ok := keys[p]
			if !ok {
				continue
			}
			if pk > ck {
				res = append(res, Edge{Child: c, Parent: p})
			}
		}
	}
	return
}

type trace struct {
	headInd int
	commit  string
}

// LastCommonParent returns the first commit reachable from all heads, walking parents breadth first.
func (s *Graph) LastCommonParent(heads []string) (string, error) {
	if len(heads) == 0 {
		return "", fmt.Errorf("no heads passed")
	}
	var curr []trace
	for i, h := range heads {
		curr = append(curr, trace{i, h})
	}
	reached := map[string]map[int]bool{}
	markReach := func(tr trace) (done bool) {
		commit := tr.commit
		fromHead := tr.headInd
		if _, ok := reached[commit]; !ok {
			reached[commit] = map[int]bool{}
		}
		reached[commit][fromHead] = true
		return len(reached[commit]) == len(heads)
	}
	for {
		var ntr []trace
		for _, tr := range curr {
			if markReach(tr) {
				return tr.commit, nil
			}
			for _, p := range s.Parents[tr.commit] {
				ntr = append(ntr, trace{headInd: tr.headInd, commit: p})
			}
		}
		if len(ntr) == 0 {
			return "", fmt.Errorf("all roots reached, heads %v have no common parent", heads)
		}
		curr = ntr
	}
}
