package repl

// History is an append-only list of input lines with a recall cursor. Add
// moves the cursor past the newest entry; Up and Down walk back and forth.
type History struct {
	entries []string
	index   int
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Add(line string) {
	h.entries = append(h.entries, line)
	h.index = len(h.entries)
}

// Up moves to the previous entry, stopping at the oldest.
func (h *History) Up() (string, bool) {
	if h.index > 0 {
		h.index--
	}
	return h.current()
}

// Down moves to the next entry. Past the newest there is nothing to recall.
func (h *History) Down() (string, bool) {
	if h.index < len(h.entries) {
		h.index++
	}
	return h.current()
}

func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) current() (string, bool) {
	if h.index < len(h.entries) {
		return h.entries[h.index], true
	}
	return "", false
}
