package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Kanma/MPQExtractor/archive"
	"github.com/Kanma/MPQExtractor/errors"
	"github.com/Kanma/MPQExtractor/fs/billy"
	"github.com/Kanma/MPQExtractor/fs/core"
	"github.com/Kanma/MPQExtractor/internal/logging"
	"github.com/Kanma/MPQExtractor/internal/validate"
)

// Options configures a single run.
type Options struct {
	// ListFile, when set, receives the archive's list file before patching.
	ListFile string

	// DefaultPrefix applies to patch tokens that carry no prefix of their own.
	DefaultPrefix string

	// Patches holds raw patch tokens, "path" or "path,prefix", in the order
	// they are layered.
	Patches []string

	// Pattern is an exact member name or a wildcard pattern. Empty skips
	// the search.
	Pattern string

	// Extract extracts the members Pattern resolves to.
	Extract bool

	// Destination is the extraction root. Empty means the current directory.
	Destination string

	// FullPath preserves the archive hierarchy under Destination.
	FullPath bool

	// LowerCase lowercases destination paths.
	LowerCase bool
}

// Session drives runs against a backend.
type Session struct {
	backend   archive.Backend
	fsys      core.FS
	logger    *logging.Logger
	out       io.Writer
	validator *validate.MemberPathValidator
}

// Option configures a Session.
type Option func(*Session)

// WithFS sets the filesystem destination directories are created on. It must
// be the filesystem the backend extracts to.
func WithFS(fsys core.FS) Option {
	return func(s *Session) {
		s.fsys = fsys
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithOutput sets the writer progress lines are printed to.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// New creates a Session over backend. By default destination directories
// are created on the local filesystem, progress is discarded and nothing is
// logged.
func New(backend archive.Backend, opts ...Option) *Session {
	s := &Session{
		backend:   backend,
		validator: validate.NewMemberPathValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fsys == nil {
		s.fsys = billy.NewLocal()
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	if s.out == nil {
		s.out = io.Discard
	}
	return s
}

// Run performs one extraction run against the archive at path.
//
// The returned Report is never nil. A non-nil error is fatal; per-item
// failures are only recorded in the Report.
func (s *Session) Run(ctx context.Context, path string, opts Options) (*Report, error) {
	report := &Report{Archive: path}
	logger := s.logger.WithArchive(path)

	s.printf("Opening '%s'...\n", path)
	start := time.Now()
	h, err := s.backend.Open(ctx, path)
	logging.LogOperation(ctx, logger, logging.OpOpenArchive, time.Since(start), err)
	if err != nil {
		return report, errors.WrapWithContext(err, errors.CodeArchiveOpen,
			fmt.Sprintf("failed to open the file '%s'", path),
			map[string]interface{}{"archive": path})
	}
	defer func() {
		start := time.Now()
		err := h.Close()
		logging.LogOperation(ctx, logger, logging.OpCloseArchive, time.Since(start), err)
	}()

	if opts.ListFile != "" {
		start := time.Now()
		err := h.ExtractSpecial(ctx, archive.ListFile, opts.ListFile)
		logging.LogOperation(ctx, logger, logging.OpExtractList, time.Since(start), err, "dest", opts.ListFile)
		if err != nil {
			return report, errors.WrapWithContext(err, errors.CodeListFile,
				"failed to extract the list of files",
				map[string]interface{}{"dest": opts.ListFile})
		}
		report.ListFile = opts.ListFile
	}

	report.Patches = s.ApplyPatches(ctx, h, ParsePatchSpecs(opts.Patches, opts.DefaultPrefix))

	if opts.Pattern == "" {
		return report, nil
	}

	results, err := s.Resolve(ctx, h, opts.Pattern)
	report.Results = results
	if err != nil {
		report.SearchErr = err
		logger.Warn(ctx, "search failed", "pattern", opts.Pattern, "error", err.Error())
	}

	if opts.Extract && len(results) > 0 {
		s.printf("\nExtracting files...\n\n")
		report.Extractions = s.ExtractAll(ctx, h, results, Layout{
			Root:      opts.Destination,
			FullPath:  opts.FullPath,
			LowerCase: opts.LowerCase,
		})
		if n := len(report.Extractions); n > 0 && errors.IsFatal(report.Extractions[n-1].Err) {
			return report, report.Extractions[n-1].Err
		}
	}

	return report, nil
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
