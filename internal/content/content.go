// Package content holds the checklist document model: sections made of steps,
// steps made of typed content blocks. A Tree is built once (from YAML or the
// embedded default) and treated as read-only by everything downstream.
package content

// BlockKind names the variant of a content block.
type BlockKind string

const (
	KindCommand BlockKind = "command"
	KindPitfall BlockKind = "pitfall"
	KindText    BlockKind = "text"
)

// Block is one atomic unit of step content. The set of implementations is
// closed: Command, Pitfall and Text.
type Block interface {
	Kind() BlockKind
	block()
}

// Command is a list of shell commands for a platform. Language and
// Description are optional.
type Command struct {
	Platform    string
	Language    string
	Commands    []string
	Description string
}

// Pitfall describes a common mistake and how to fix it.
type Pitfall struct {
	Title   string
	Content string
	Fix     string
}

// Text is free-form prose, authored as markdown.
type Text struct {
	Content string
}

func (Command) Kind() BlockKind { return KindCommand }
func (Pitfall) Kind() BlockKind { return KindPitfall }
func (Text) Kind() BlockKind    { return KindText }

func (Command) block() {}
func (Pitfall) block() {}
func (Text) block()    {}

// Step is a subsection within a Section.
type Step struct {
	ID          string
	Title       string
	Description string
	Blocks      []Block
}

// Section is a top-level checklist chapter.
type Section struct {
	ID          string
	Title       string
	Description string
	Steps       []Step
}

// Tree is the ordered list of sections making up a checklist.
type Tree []Section

// SectionIDs returns the section identifiers in document order.
func (t Tree) SectionIDs() []string {
	ids := make([]string, len(t))
	for i, s := range t {
		ids[i] = s.ID
	}
	return ids
}

// Section looks up a section by id.
func (t Tree) Section(id string) (Section, bool) {
	for _, s := range t {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// IndexOf returns the position of the section with the given id, or -1.
func (t Tree) IndexOf(id string) int {
	for i, s := range t {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// StepCount returns the number of steps across all sections.
func (t Tree) StepCount() int {
	n := 0
	for _, s := range t {
		n += len(s.Steps)
	}
	return n
}

// Commands returns every command line in the step, in block order.
func (s Step) Commands() []string {
	var out []string
	for _, b := range s.Blocks {
		if cmd, ok := b.(Command); ok {
			out = append(out, cmd.Commands...)
		}
	}
	return out
}
