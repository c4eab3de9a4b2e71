package engine

import (
	"sort"

	"github.com/google/uuid"
)

// groupMatches folds the match set into groups using original_source's
// confidence-ordered admission (its dupe2group scheme): matches are
// processed from highest percentage to lowest; a match between an
// already-grouped file and an ungrouped one admits the ungrouped file
// into the existing group; a match between two files already in two
// *different* groups is dropped rather than merging those groups. Only
// a match that finds at least one ungrouped endpoint ever grows a
// group, so two independently tight clusters connected by nothing but
// a single weak bridging match stay separate instead of collapsing
// into one "soupy" blob — the exact failure mode spec.md §4.5's
// rationale calls out for plain transitive-closure connected
// components.
//
// Groups with fewer than two members, or with no non-reference member,
// are discarded: a lone file is not a duplicate of anything, and a
// group made only of reference files has no member to act upon.
// postFilter already drops reference-to-reference matches, so the
// second case only arises for match sets that did not pass through it.
func groupMatches(matches []Match) []*Group {
	ordered := append([]Match(nil), matches...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Percent != ordered[j].Percent {
			return ordered[i].Percent > ordered[j].Percent
		}
		if ordered[i].First.Path != ordered[j].First.Path {
			return ordered[i].First.Path < ordered[j].First.Path
		}
		return ordered[i].Second.Path < ordered[j].Second.Path
	})

	groupOf := make(map[*File]*Group, len(ordered)*2)
	var groups []*Group

	for _, m := range ordered {
		if m.First == m.Second {
			// A file matched with itself is not a pair of files.
			continue
		}
		ga, oka := groupOf[m.First]
		gb, okb := groupOf[m.Second]

		switch {
		case !oka && !okb:
			g := &Group{ID: uuid.New(), Members: []*File{m.First, m.Second}}
			groupOf[m.First] = g
			groupOf[m.Second] = g
			groups = append(groups, g)
		case oka && !okb:
			ga.Members = append(ga.Members, m.Second)
			groupOf[m.Second] = ga
		case !oka && okb:
			gb.Members = append(gb.Members, m.First)
			groupOf[m.First] = gb
		case ga != gb:
			// Both endpoints already belong to two different groups:
			// drop the match instead of merging the groups.
		}
	}

	out := groups[:0:0]
	for _, g := range groups {
		if g.Size() < 2 {
			continue
		}
		nonRef := false
		for _, m := range g.Members {
			if !m.IsRef {
				nonRef = true
				break
			}
		}
		if nonRef {
			out = append(out, g)
		}
	}
	return out
}
