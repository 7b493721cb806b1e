// Package trainer provides trainer templates loaded from YAML and the
// sequential roster that sends their team out one creature at a time.
package trainer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/reefbattle/internal/game/ai"
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
)

// Member is one team slot: a species at a fixed level.
type Member struct {
	SpeciesID int `yaml:"species"`
	Level     int `yaml:"level"`
}

// Template defines a trainer loaded from YAML.
type Template struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Team       []Member `yaml:"team"`
	PrizeMoney int      `yaml:"prize_money"`
	// Difficulty overrides the AI difficulty derived from the trainer's name.
	Difficulty ai.Difficulty `yaml:"difficulty,omitempty"`
	// Script names the Lua scope whose score_move hook tunes this trainer's
	// move choice. Empty means no hook.
	Script           string   `yaml:"script,omitempty"`
	Dialogue         []string `yaml:"dialogue,omitempty"`
	DefeatedDialogue []string `yaml:"defeated_dialogue,omitempty"`
}

// Validate checks that the template satisfies basic invariants. Species ids
// are resolved by the content loader that owns the species registry.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, the team has at
// least one member with a level in [1, creature.MaxLevel], PrizeMoney >= 0
// and Difficulty is empty or known.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trainer template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("trainer template %q: name must not be empty", t.ID)
	}
	if len(t.Team) == 0 {
		return fmt.Errorf("trainer template %q: team must not be empty", t.ID)
	}
	for i, m := range t.Team {
		if m.SpeciesID <= 0 {
			return fmt.Errorf("trainer template %q: team[%d] species must be positive", t.ID, i)
		}
		if m.Level < 1 || m.Level > creature.MaxLevel {
			return fmt.Errorf("trainer template %q: team[%d] level %d out of range", t.ID, i, m.Level)
		}
	}
	if t.PrizeMoney < 0 {
		return fmt.Errorf("trainer template %q: prize_money must be >= 0", t.ID)
	}
	if t.Difficulty != "" {
		if _, err := ai.ParseDifficulty(string(t.Difficulty)); err != nil {
			return fmt.Errorf("trainer template %q: %w", t.ID, err)
		}
	}
	return nil
}

// AIDifficulty returns the explicit difficulty, or the one implied by the
// trainer's name.
func (t *Template) AIDifficulty() ai.Difficulty {
	if t.Difficulty != "" {
		return t.Difficulty
	}
	return ai.DifficultyForTrainer(t.Name)
}

// LoadTemplateFromBytes parses a single trainer template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing trainer YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir, one trainer per file.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the templates sorted by ID, or an error on the first
// parse, validate or duplicate-id failure.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading trainer dir %q: %w", dir, err)
	}

	seen := make(map[string]string)
	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if prev, dup := seen[tmpl.ID]; dup {
			return nil, fmt.Errorf("loading %q: trainer %q already defined in %q", path, tmpl.ID, prev)
		}
		seen[tmpl.ID] = path
		templates = append(templates, tmpl)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}
