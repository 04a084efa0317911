package session

import (
	"context"
	"strings"
	"time"

	"github.com/Kanma/MPQExtractor/archive"
	"github.com/Kanma/MPQExtractor/errors"
	"github.com/Kanma/MPQExtractor/internal/logging"
)

// PatchSpec is one patch archive and the prefix it is layered with.
type PatchSpec struct {
	Path   string
	Prefix string
}

// ParsePatchSpec splits a raw token on its first comma. Without a comma the
// whole token is the path and defaultPrefix applies. With one, the text after
// the comma is the prefix even when empty.
func ParsePatchSpec(token, defaultPrefix string) PatchSpec {
	path, prefix, found := strings.Cut(token, ",")
	if !found {
		return PatchSpec{Path: token, Prefix: defaultPrefix}
	}
	return PatchSpec{Path: path, Prefix: prefix}
}

// ParsePatchSpecs parses tokens in order.
func ParsePatchSpecs(tokens []string, defaultPrefix string) []PatchSpec {
	specs := make([]PatchSpec, 0, len(tokens))
	for _, token := range tokens {
		specs = append(specs, ParsePatchSpec(token, defaultPrefix))
	}
	return specs
}

// PatchOutcome records the result of layering one patch.
type PatchOutcome struct {
	Spec PatchSpec
	Err  error
}

// ApplyPatches layers specs onto h strictly in order. A patch that fails is
// logged and skipped; the remaining patches are still applied.
func (s *Session) ApplyPatches(ctx context.Context, h archive.Handle, specs []PatchSpec) []PatchOutcome {
	outcomes := make([]PatchOutcome, 0, len(specs))
	for _, spec := range specs {
		if spec.Prefix != "" {
			s.printf("Applying patch '%s' (prefix '%s')...\n", spec.Path, spec.Prefix)
		} else {
			s.printf("Applying patch '%s' (no prefix)...\n", spec.Path)
		}

		start := time.Now()
		err := h.LayerPatch(ctx, spec.Path, spec.Prefix)
		if err != nil {
			err = errors.WrapWithContext(err, errors.CodePatchFailed,
				"failed to apply the patch '"+spec.Path+"'",
				map[string]interface{}{"patch": spec.Path, "prefix": spec.Prefix})
		}
		logging.LogOperation(ctx, s.logger, logging.OpLayerPatch, time.Since(start), err,
			"patch", spec.Path, "prefix", spec.Prefix)

		outcomes = append(outcomes, PatchOutcome{Spec: spec, Err: err})
	}
	return outcomes
}
