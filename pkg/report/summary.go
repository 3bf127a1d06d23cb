package report

// Counts tallies outcomes for one entity kind
type Counts struct {
	Created  int
	Existing int
	Skipped  int
	Degraded int
}

// Summary tallies outcomes per entity kind
type Summary struct {
	order  []string
	counts map[string]*Counts
}

// NewSummary creates a summary that reports kinds in the given order
func NewSummary(kinds ...string) *Summary {
	s := &Summary{counts: make(map[string]*Counts)}
	for _, k := range kinds {
		s.get(k)
	}
	return s
}

func (s *Summary) get(kind string) *Counts {
	c, ok := s.counts[kind]
	if !ok {
		c = &Counts{}
		s.counts[kind] = c
		s.order = append(s.order, kind)
	}
	return c
}

// Add records the outcome carried by a diagnostic
func (s *Summary) Add(d Diagnostic) {
	if d.Kind == "" {
		return
	}

	switch d.Event {
	case EventCreated:
		s.get(d.Kind).Created++
	case EventExists:
		s.get(d.Kind).Existing++
	case EventSkipped:
		s.get(d.Kind).Skipped++
	case EventDegraded:
		s.get(d.Kind).Degraded++
	}
}

// For returns the counts for a kind
func (s *Summary) For(kind string) Counts {
	if c, ok := s.counts[kind]; ok {
		return *c
	}
	return Counts{}
}

// Kinds returns the kinds in report order
func (s *Summary) Kinds() []string {
	return s.order
}

// TotalCreated returns the number of created objects across all kinds
func (s *Summary) TotalCreated() int {
	total := 0
	for _, c := range s.counts {
		total += c.Created
	}
	return total
}
