package workbook

// Kind tags the variant stored in a Cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindInline
	KindShared
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindShared:
		return "shared"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// Cell is a single worksheet value. Shared-string cells hold an index into the
// sheet's StringTable and must be resolved with Text.
type Cell struct {
	Kind  Kind
	Value string
	Index int
}

func Inline(text string) Cell { return Cell{Kind: KindInline, Value: text} }

func Shared(index int) Cell { return Cell{Kind: KindShared, Index: index} }

func Number(raw string) Cell { return Cell{Kind: KindNumber, Value: raw} }

// Text returns the cell's textual value. A shared reference that the table
// cannot resolve yields "".
func (c Cell) Text(strings StringTable) string {
	switch c.Kind {
	case KindInline, KindNumber:
		return c.Value
	case KindShared:
		if strings == nil {
			return ""
		}
		s, _ := strings.Lookup(c.Index)
		return s
	default:
		return ""
	}
}

// StringTable resolves shared-string indices.
type StringTable interface {
	Lookup(index int) (string, bool)
}

// SharedStrings is a deduplicated, slice-backed StringTable.
type SharedStrings struct {
	items []string
	index map[string]int
}

func NewSharedStrings(items ...string) *SharedStrings {
	s := &SharedStrings{index: make(map[string]int, len(items))}
	for _, item := range items {
		s.Intern(item)
	}
	return s
}

// Intern returns the index of text, appending it when it is new.
func (s *SharedStrings) Intern(text string) int {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[text]; ok {
		return i
	}
	s.items = append(s.items, text)
	s.index[text] = len(s.items) - 1
	return len(s.items) - 1
}

func (s *SharedStrings) Lookup(index int) (string, bool) {
	if s == nil || index < 0 || index >= len(s.items) {
		return "", false
	}
	return s.items[index], true
}

func (s *SharedStrings) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}
