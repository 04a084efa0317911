package session

import (
	"context"
	"fmt"
	"time"

	"github.com/Kanma/MPQExtractor/archive"
	"github.com/Kanma/MPQExtractor/errors"
	"github.com/Kanma/MPQExtractor/internal/logging"
)

// ExtractionOutcome records the result of extracting one member.
type ExtractionOutcome struct {
	Result      SearchResult
	Destination string
	Err         error
}

// ExtractAll extracts the patched view of every result, in order. Each
// member's destination directories are created first. A member that fails
// is logged and recorded; the rest are still attempted. Only a closed handle
// stops the batch early.
func (s *Session) ExtractAll(ctx context.Context, h archive.Handle, results []SearchResult, layout Layout) []ExtractionOutcome {
	outcomes := make([]ExtractionOutcome, 0, len(results))
	for _, r := range results {
		out := s.extractOne(ctx, h, r, layout)
		outcomes = append(outcomes, out)
		if errors.IsFatal(out.Err) {
			break
		}
	}
	return outcomes
}

func (s *Session) extractOne(ctx context.Context, h archive.Handle, r SearchResult, layout Layout) ExtractionOutcome {
	dest := layout.DestinationPath(r)
	out := ExtractionOutcome{Result: r, Destination: dest}

	start := time.Now()
	err := s.extract(ctx, h, r, dest)
	switch {
	case err == nil:
	case errors.GetCode(err) == errors.CodeSecurityViolation:
		out.Err = errors.WithContext(err, "dest", dest)
	default:
		code := errors.CodeExtractionFailed
		switch {
		case errors.Is(err, archive.ErrMemberNotFound):
			code = errors.CodeNotFound
		case errors.Is(err, archive.ErrClosed):
			code = errors.CodeClosed
		}
		out.Err = errors.WrapWithContext(err, code,
			fmt.Sprintf("failed to extract the file '%s' in %s", r.FullPath, dest),
			map[string]interface{}{"member": r.FullPath, "dest": dest})
	}
	logging.LogOperation(ctx, s.logger, logging.OpExtractMember, time.Since(start), out.Err,
		"member", r.FullPath, "dest", dest)
	return out
}

func (s *Session) extract(ctx context.Context, h archive.Handle, r SearchResult, dest string) error {
	if err := s.validator.ValidateMember(r.FullPath); err != nil {
		return err
	}
	if err := EnsureDirs(s.fsys, dest); err != nil {
		return err
	}
	return h.ExtractMember(ctx, r.FullPath, dest, true)
}
