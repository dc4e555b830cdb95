package state

// NavEntry is one line of the navigation panel.
type NavEntry struct {
	ID    string
	Title string
	Steps int
}

// Nav tracks the navigation panel: its entries, the highlighted entry, and
// the first visible row.
type Nav struct {
	Entries []NavEntry
	Cursor  int
	Offset  int
}

// SetEntries replaces the entries, keeping the cursor on the same id when it
// survives and resetting it otherwise.
func (n *Nav) SetEntries(entries []NavEntry) {
	prev := n.CurrentID()
	n.Entries = entries
	n.Cursor = -1
	if idx := n.IndexOf(prev); idx >= 0 {
		n.Cursor = idx
	}
	if n.Offset > len(entries)-1 {
		n.Offset = 0
	}
}

// IndexOf returns the index of id, or -1.
func (n *Nav) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range n.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// CurrentID returns the id under the cursor, if any.
func (n *Nav) CurrentID() string {
	if n.Cursor < 0 || n.Cursor >= len(n.Entries) {
		return ""
	}
	return n.Entries[n.Cursor].ID
}

// Select moves the cursor to id. Unknown ids clear the cursor.
func (n *Nav) Select(id string) bool {
	idx := n.IndexOf(id)
	old := n.Cursor
	n.Cursor = idx
	return old != idx
}

// Next returns the entry after the cursor, or the first entry when nothing
// is selected.
func (n *Nav) Next() (NavEntry, bool) {
	if len(n.Entries) == 0 {
		return NavEntry{}, false
	}
	idx := n.Cursor + 1
	if n.Cursor < 0 {
		idx = 0
	}
	if idx >= len(n.Entries) {
		return NavEntry{}, false
	}
	return n.Entries[idx], true
}

// Prev returns the entry before the cursor.
func (n *Nav) Prev() (NavEntry, bool) {
	if n.Cursor <= 0 || n.Cursor > len(n.Entries) {
		return NavEntry{}, false
	}
	return n.Entries[n.Cursor-1], true
}

// EnsureCursorVisible adjusts the offset so the cursor stays within
// maxVisible rows.
func (n *Nav) EnsureCursorVisible(maxVisible int) {
	if len(n.Entries) == 0 || maxVisible <= 0 {
		n.Offset = 0
		return
	}
	maxOffset := len(n.Entries) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.Offset > maxOffset {
		n.Offset = maxOffset
	}
	if n.Offset < 0 {
		n.Offset = 0
	}
	if n.Cursor < 0 {
		return
	}
	if n.Cursor < n.Offset {
		n.Offset = n.Cursor
	}
	if upper := n.Offset + maxVisible - 1; n.Cursor > upper {
		n.Offset = n.Cursor - maxVisible + 1
	}
}

// Visible returns the entries shown for maxVisible rows along with the index
// of the first one.
func (n *Nav) Visible(maxVisible int) ([]NavEntry, int) {
	if maxVisible <= 0 || len(n.Entries) <= maxVisible {
		return n.Entries, 0
	}
	start := n.Offset
	if start+maxVisible > len(n.Entries) {
		start = len(n.Entries) - maxVisible
	}
	if start < 0 {
		start = 0
	}
	return n.Entries[start : start+maxVisible], start
}
