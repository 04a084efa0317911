package session

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Kanma/MPQExtractor/errors"
)

// Report describes what a run did.
type Report struct {
	// Archive is the base archive path.
	Archive string

	// ListFile is where the list file was saved, if requested.
	ListFile string

	// Patches holds one outcome per patch token, in layering order.
	Patches []PatchOutcome

	// Results is the resolved member list, in discovery order.
	Results []SearchResult

	// SearchErr is set when the backend failed a wildcard search.
	SearchErr error

	// Extractions holds one outcome per result when extraction ran.
	Extractions []ExtractionOutcome
}

// PatchesApplied returns the number of patches layered successfully.
func (r *Report) PatchesApplied() int {
	n := 0
	for _, p := range r.Patches {
		if p.Err == nil {
			n++
		}
	}
	return n
}

// Extracted returns the number of members extracted successfully.
func (r *Report) Extracted() int {
	n := 0
	for _, e := range r.Extractions {
		if e.Err == nil {
			n++
		}
	}
	return n
}

// Failures returns every per-item error recorded in the report.
func (r *Report) Failures() []error {
	var errs []error
	for _, p := range r.Patches {
		if p.Err != nil {
			errs = append(errs, p.Err)
		}
	}
	if r.SearchErr != nil {
		errs = append(errs, r.SearchErr)
	}
	for _, e := range r.Extractions {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errs
}

// Summary renders a one-line description of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d/%d patches applied, %d files found, %d/%d files extracted",
		r.PatchesApplied(), len(r.Patches), len(r.Results), r.Extracted(), len(r.Extractions))
}

// reportDoc is the serialized form of a Report.
type reportDoc struct {
	Archive     string          `yaml:"archive"`
	ListFile    string          `yaml:"listfile,omitempty"`
	Patches     []patchDoc      `yaml:"patches,omitempty"`
	Results     []SearchResult  `yaml:"results,omitempty"`
	SearchError *errorDoc       `yaml:"search_error,omitempty"`
	Extractions []extractionDoc `yaml:"extractions,omitempty"`
	Summary     string          `yaml:"summary"`
}

type patchDoc struct {
	Path   string    `yaml:"path"`
	Prefix string    `yaml:"prefix"`
	Error  *errorDoc `yaml:"error,omitempty"`
}

type extractionDoc struct {
	Member      string    `yaml:"member"`
	Destination string    `yaml:"destination"`
	Error       *errorDoc `yaml:"error,omitempty"`
}

type errorDoc struct {
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
}

func newErrorDoc(err error) *errorDoc {
	if err == nil {
		return nil
	}
	return &errorDoc{Code: string(errors.GetCode(err)), Message: err.Error()}
}

// MarshalYAML renders the report with errors flattened to code and message.
func (r *Report) MarshalYAML() (interface{}, error) {
	doc := reportDoc{
		Archive:     r.Archive,
		ListFile:    r.ListFile,
		Results:     r.Results,
		SearchError: newErrorDoc(r.SearchErr),
		Summary:     r.Summary(),
	}
	for _, p := range r.Patches {
		doc.Patches = append(doc.Patches, patchDoc{
			Path:   p.Spec.Path,
			Prefix: p.Spec.Prefix,
			Error:  newErrorDoc(p.Err),
		})
	}
	for _, e := range r.Extractions {
		doc.Extractions = append(doc.Extractions, extractionDoc{
			Member:      e.Result.FullPath,
			Destination: e.Destination,
			Error:       newErrorDoc(e.Err),
		})
	}
	return doc, nil
}

// YAML encodes the report as a YAML document.
func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}
