package content

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/deploy-checklist/internal/logging/events"
	"gopkg.in/yaml.v3"
)

type document struct {
	Sections []sectionDoc `yaml:"sections"`
}

type sectionDoc struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Steps       []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Blocks      []blockDoc `yaml:"blocks"`
}

// blockDoc is the union of every block variant's fields; Type selects which
// ones apply.
type blockDoc struct {
	Type        string   `yaml:"type"`
	Platform    string   `yaml:"platform"`
	Language    string   `yaml:"language"`
	Commands    []string `yaml:"commands"`
	Description string   `yaml:"description"`
	Title       string   `yaml:"title"`
	Content     string   `yaml:"content"`
	Fix         string   `yaml:"fix"`
}

// LoadFile reads and validates a checklist from a YAML file.
func LoadFile(path string) (Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()
	tree, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	events.Content.Load(path, len(tree), tree.StepCount())
	return tree, nil
}

// Load decodes a checklist from YAML and validates it.
func Load(r io.Reader) (Tree, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTree)
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	tree, err := doc.tree()
	if err != nil {
		return nil, err
	}
	if err := Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (d document) tree() (Tree, error) {
	tree := make(Tree, 0, len(d.Sections))
	for _, sd := range d.Sections {
		section := Section{
			ID:          strings.TrimSpace(sd.ID),
			Title:       sd.Title,
			Description: sd.Description,
			Steps:       make([]Step, 0, len(sd.Steps)),
		}
		for _, td := range sd.Steps {
			step := Step{
				ID:          strings.TrimSpace(td.ID),
				Title:       td.Title,
				Description: td.Description,
				Blocks:      make([]Block, 0, len(td.Blocks)),
			}
			for i, bd := range td.Blocks {
				b, err := bd.block()
				if err != nil {
					return nil, fmt.Errorf("step %q block %d: %w", step.ID, i, err)
				}
				step.Blocks = append(step.Blocks, b)
			}
			section.Steps = append(section.Steps, step)
		}
		tree = append(tree, section)
	}
	return tree, nil
}

func (b blockDoc) block() (Block, error) {
	switch BlockKind(strings.ToLower(strings.TrimSpace(b.Type))) {
	case KindCommand:
		return Command{
			Platform:    b.Platform,
			Language:    b.Language,
			Commands:    append([]string(nil), b.Commands...),
			Description: b.Description,
		}, nil
	case KindPitfall:
		return Pitfall{Title: b.Title, Content: b.Content, Fix: b.Fix}, nil
	case KindText:
		return Text{Content: b.Content}, nil
	case "":
		return nil, fmt.Errorf("%w: block type missing", ErrInvalidTree)
	default:
		return nil, fmt.Errorf("%w: unknown block type %q", ErrInvalidTree, b.Type)
	}
}
