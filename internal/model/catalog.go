package model

// Item maps attribute identifiers to typed values. Values are nil, int64,
// bool or string depending on the attribute's SemanticType; category values
// are int64 indexes into the attribute's label set.
type Item map[string]any

// Int returns the integer value of identifier, if present.
func (it Item) Int(identifier string) (int64, bool) {
	v, ok := it[identifier].(int64)
	return v, ok
}

// LabelSet is the ordered list of distinct labels seen for one category
// attribute. Index 0 is always Unspecified.
type LabelSet struct {
	labels []string
	index  map[string]int64
}

func NewLabelSet() *LabelSet {
	return &LabelSet{
		labels: []string{Unspecified},
		index:  map[string]int64{Unspecified: 0},
	}
}

// Add registers label if it is new and returns its index.
func (s *LabelSet) Add(label string) int64 {
	if i, ok := s.index[label]; ok {
		return i
	}
	i := int64(len(s.labels))
	s.labels = append(s.labels, label)
	s.index[label] = i
	return i
}

// Index returns the index of label, or 0 when it was never seen.
func (s *LabelSet) Index(label string) int64 {
	return s.index[label]
}

func (s *LabelSet) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

func (s *LabelSet) Len() int {
	return len(s.labels)
}

// Catalog is one parsed feed.
type Catalog struct {
	Created    string
	Message    string
	Categories map[string]*LabelSet
	Items      []Item
}

func (c *Catalog) Len() int {
	return len(c.Items)
}
