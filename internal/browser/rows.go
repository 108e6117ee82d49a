package browser

// Rows drawn for an open action overlay besides the actions themselves.
// SelectedRow and TotalRows must agree on these.
const (
	metadataRows          = 1
	separatorRows         = 1
	trailingSeparatorRows = 1
)

// Overlay describes an open action overlay under the selected session.
type Overlay struct {
	Actions     int
	Highlighted int
}

// GroupOffset counts the group headers that start at or before filtered
// index selected. It equals the header count above the selected row only
// while every group occupies a contiguous run of the view.
func GroupOffset(groups []Group, selected int) int {
	n := 0
	for _, g := range groups {
		if len(g.Members) > 0 && g.Members[0].Index <= selected {
			n++
		}
	}
	return n
}

// SelectedRow is the flat row of the selection, counting group headers and,
// with an overlay, the rows inserted after the selected session. The row is
// found by walking groups so it stays correct when paths interleave.
func SelectedRow(groups []Group, selected int, overlay *Overlay) int {
	row := 0
	found := false
	for _, g := range groups {
		row++
		for _, m := range g.Members {
			if m.Index == selected {
				found = true
				break
			}
			row++
		}
		if found {
			break
		}
	}
	if !found {
		return 0
	}
	if overlay != nil {
		row += 1 + metadataRows + separatorRows + overlay.Highlighted
	}
	return row
}

// TotalRows is the number of flat rows drawn, zero for an empty view.
func TotalRows(groups []Group, overlay *Overlay) int {
	total := 0
	for _, g := range groups {
		total += len(g.Members)
	}
	if total == 0 {
		return 0
	}
	total += len(groups)
	if overlay != nil {
		total += metadataRows + separatorRows + overlay.Actions + trailingSeparatorRows
	}
	return total
}

// ScrollOffset keeps the selected row centered once it passes the middle
// of the viewport, without scrolling past the last row.
func ScrollOffset(selected, total, height int) int {
	if height <= 0 || total <= 0 {
		return 0
	}
	middle := height / 2
	if selected <= middle {
		return 0
	}
	return min(selected-middle, max(0, total-height))
}
