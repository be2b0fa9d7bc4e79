package strumtab

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectVersion is the current document version written by WriteProject.
const ProjectVersion = 2

// Project is the serialized document of one piece. The Tab payload is the
// canonical representation; a legacy Grid payload may appear instead in old
// documents and is bridged to a Tab on load.
type Project struct {
	Version       int
	Title         string `yaml:",omitempty"`
	Artist        string `yaml:",omitempty"`
	BPM           int
	TimeSignature TimeSignature
	Tab           Tab     `yaml:",omitempty"`
	Grid          TabData `yaml:",omitempty"`
}

// NewProject returns an empty document with sane defaults.
func NewProject() Project {
	return Project{
		Version:       ProjectVersion,
		BPM:           120,
		TimeSignature: TimeSignature{Numerator: 4, Denominator: 4},
	}
}

// Validate returns the list of problems with a deserialized document; an
// empty list means the document may enter the store operations.
func (p Project) Validate() []string {
	var errs []string
	if p.BPM < 1 {
		errs = append(errs, "BPM should be > 0")
	}
	if !p.TimeSignature.Valid() {
		errs = append(errs, fmt.Sprintf("unusable time signature %v/%v", p.TimeSignature.Numerator, p.TimeSignature.Denominator))
	}
	errs = append(errs, p.Tab.Validate()...)
	return errs
}

// ReadProject parses a project document, trying JSON first and YAML second,
// and validates it before handing it to the caller. Documents that carry only
// the legacy grid payload are bridged into the NoteStack model.
func ReadProject(r io.Reader) (Project, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Project{}, fmt.Errorf("could not read project: %v", err)
	}
	var p Project
	if errJSON := json.Unmarshal(b, &p); errJSON != nil {
		if errYaml := yaml.Unmarshal(b, &p); errYaml != nil {
			return Project{}, fmt.Errorf("the project could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if len(p.Tab) == 0 && len(p.Grid) > 0 {
		p.Tab = p.Grid.TabDataToTab()
		if err := ValidateConversion(p.Grid, p.Tab); err != nil {
			return Project{}, fmt.Errorf("invalid project file: %v", err)
		}
	}
	if errs := p.Validate(); len(errs) > 0 {
		return Project{}, fmt.Errorf("invalid project file: %s", strings.Join(errs, "; "))
	}
	return p, nil
}

// WriteProject serializes the document, as JSON when the extension says so and
// as YAML otherwise, mirroring how projects are read back.
func WriteProject(w io.Writer, p Project, extension string) error {
	var contents []byte
	var err error
	if extension == ".json" {
		contents, err = json.Marshal(p)
	} else {
		contents, err = yaml.Marshal(p)
	}
	if err != nil {
		return fmt.Errorf("could not marshal project: %v", err)
	}
	if _, err := w.Write(contents); err != nil {
		return fmt.Errorf("could not write project: %v", err)
	}
	return nil
}
