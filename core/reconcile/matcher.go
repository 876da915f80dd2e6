package reconcile

// MatchKind tells how a source record found its downstream record.
type MatchKind int

const (
	// MatchNone means no downstream record was found.
	MatchNone MatchKind = iota
	// MatchHint means the source hint equals a downstream id.
	MatchHint
	// MatchName means the case-folded names are equal.
	MatchName
)

// String returns a lowercase label for logs.
func (k MatchKind) String() string {
	switch k {
	case MatchHint:
		return "hint"
	case MatchName:
		return "name"
	default:
		return "none"
	}
}

// Match pairs a source record with at most one downstream record.
type Match struct {
	Source *SourceRecord
	Target *DownstreamRecord
	Kind   MatchKind
}

// Matched reports whether a downstream record was found.
func (m Match) Matched() bool {
	return m.Target != nil
}

// Matcher resolves source records to downstream records, claiming every
// downstream id it hands out so no downstream record is matched twice.
type Matcher struct {
	items   []DownstreamRecord
	byID    map[string]int
	byName  map[string][]int
	claimed map[string]struct{}
}

// NewMatcher indexes the downstream records of one run.
func NewMatcher(items []DownstreamRecord) *Matcher {
	m := &Matcher{
		items:   items,
		byID:    make(map[string]int, len(items)),
		byName:  make(map[string][]int, len(items)),
		claimed: make(map[string]struct{}),
	}
	for i, item := range items {
		m.byID[item.ID] = i
		key := Fold(item.Name)
		m.byName[key] = append(m.byName[key], i)
	}
	return m
}

// MatchAll matches every source record, returning matches in source order.
// Hinted matches are claimed before any name match is attempted, so a hint
// always wins over a same-named record elsewhere in the list.
func (m *Matcher) MatchAll(sources []SourceRecord) []Match {
	matches := make([]Match, len(sources))
	for i := range sources {
		matches[i] = Match{Source: &sources[i]}
		if target := m.byHint(sources[i].DownstreamIDHint); target != nil {
			matches[i].Target = target
			matches[i].Kind = MatchHint
		}
	}
	for i := range matches {
		if matches[i].Matched() {
			continue
		}
		if target := m.byNameFold(sources[i].Name); target != nil {
			matches[i].Target = target
			matches[i].Kind = MatchName
		}
	}
	return matches
}

func (m *Matcher) byHint(hint string) *DownstreamRecord {
	hint = Normalize(hint)
	if hint == "" {
		return nil
	}
	i, ok := m.byID[hint]
	if !ok || m.IsClaimed(hint) {
		return nil
	}
	return m.claim(i)
}

func (m *Matcher) byNameFold(name string) *DownstreamRecord {
	key := Fold(name)
	if key == "" {
		return nil
	}
	for _, i := range m.byName[key] {
		if !m.IsClaimed(m.items[i].ID) {
			return m.claim(i)
		}
	}
	return nil
}

func (m *Matcher) claim(i int) *DownstreamRecord {
	m.claimed[m.items[i].ID] = struct{}{}
	return &m.items[i]
}

// IsClaimed reports whether a downstream id is matched to some source record.
func (m *Matcher) IsClaimed(id string) bool {
	_, ok := m.claimed[id]
	return ok
}

// Unclaimed returns the downstream records no source record matched, in
// listing order.
func (m *Matcher) Unclaimed() []DownstreamRecord {
	var out []DownstreamRecord
	for _, item := range m.items {
		if !m.IsClaimed(item.ID) {
			out = append(out, item)
		}
	}
	return out
}
