package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/olekukonko/tablewriter"

	"dupescan/engine"
	"dupescan/providers/audiotag"
)

// renderGroups prints one table per duplicate group: reference file
// first and marked, followed by its duplicates, with size and format
// columns. Grounded on jmylchreest-aide's tablewriter-based CLI output.
func renderGroups(w io.Writer, groups []*engine.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "no duplicate groups found")
		return
	}

	for i, g := range groups {
		fmt.Fprintf(w, "group %d (%d files)\n", i+1, g.Size())

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"", "path", "size", "format", "art"})

		rows := append([]*engine.File{g.Ref}, g.Dupes()...)
		for _, f := range rows {
			marker := ""
			if f == g.Ref {
				marker = "ref"
			}
			size, _ := f.Size()
			art := ""
			if filepath.Ext(f.Path) == ".flac" && audiotag.HasEmbeddedArt(f.Path) {
				art = "yes"
			}
			table.Append([]string{
				marker,
				f.Path,
				fmt.Sprintf("%d", size),
				filepath.Ext(f.Name),
				art,
			})
		}
		table.Render()
		fmt.Fprintln(w)
	}
}
