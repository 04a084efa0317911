package session

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kanma/MPQExtractor/archive"
	"github.com/Kanma/MPQExtractor/archive/memory"
	"github.com/Kanma/MPQExtractor/errors"
)

func newTestBackend() *memory.Backend {
	b := memory.NewBackend()
	b.Add("base.mpq",
		memory.File(`a\b\c.txt`, "base c"),
		memory.File(`a\d.txt`, "base d"),
		memory.File(`Interface\Logo.BLP`, "logo"),
	)
	b.Add("p1.ext",
		memory.File(`root\a\d.txt`, "p1 d"),
	)
	b.Add("p2.ext",
		memory.File(`base\a\d.txt`, "p2 d"),
		memory.File(`base\new.txt`, "p2 new"),
	)
	return b
}

func newTestSession(b *memory.Backend, out *bytes.Buffer) *Session {
	return New(b, WithFS(b.FS()), WithOutput(out))
}

func readFile(t *testing.T, b *memory.Backend, name string) string {
	t.Helper()
	data, err := b.FS().ReadFile(name)
	require.NoError(t, err, name)
	return string(data)
}

func TestRun_ExactFlattened(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		Pattern:     `a\b\c.txt`,
		Extract:     true,
		Destination: "out",
	})
	require.NoError(t, err)

	require.Len(t, report.Extractions, 1)
	assert.Equal(t, "out/c.txt", report.Extractions[0].Destination)
	assert.NoError(t, report.Extractions[0].Err)
	assert.Equal(t, "base c", readFile(t, b, "out/c.txt"))

	// Exact mode does not search.
	assert.NotContains(t, out.String(), "Searching for")
	assert.Contains(t, out.String(), "Extracting files...")
}

func TestRun_ExactHierarchy(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		Pattern:     `a\b\c.txt`,
		Extract:     true,
		Destination: "out",
		FullPath:    true,
	})
	require.NoError(t, err)

	require.Len(t, report.Extractions, 1)
	assert.Equal(t, "out/a/b/c.txt", report.Extractions[0].Destination)
	for _, dir := range []string{"out/a", "out/a/b"} {
		info, err := b.FS().Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
	assert.Equal(t, "base c", readFile(t, b, "out/a/b/c.txt"))
}

func TestRun_PatchOrderAndPrefixes(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		DefaultPrefix: "root",
		Patches:       []string{"p1.ext", "p2.ext,base"},
		Pattern:       `a\d.txt`,
		Extract:       true,
		Destination:   "out",
	})
	require.NoError(t, err)

	layered := b.Handles()[0].Layered()
	require.Len(t, layered, 2)
	assert.Equal(t, "p1.ext", layered[0].Path)
	assert.Equal(t, "root", layered[0].Prefix)
	assert.Equal(t, "p2.ext", layered[1].Path)
	assert.Equal(t, "base", layered[1].Prefix)

	assert.Equal(t, 2, report.PatchesApplied())
	assert.Contains(t, out.String(), "Applying patch 'p1.ext' (prefix 'root')...\n")
	assert.Contains(t, out.String(), "Applying patch 'p2.ext' (prefix 'base')...\n")

	// The newest patch supplies the extracted content.
	assert.Equal(t, "p2 d", readFile(t, b, "out/d.txt"))
}

func TestRun_NoPrefixLine(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	_, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		DefaultPrefix: "root",
		Patches:       []string{"p1.ext,"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Applying patch 'p1.ext' (no prefix)...\n")
	assert.Equal(t, "", b.Handles()[0].Layered()[0].Prefix)
}

func TestRun_GlobNoMatch(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		Pattern:     "*.mp3",
		Extract:     true,
		Destination: "out",
	})
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.Empty(t, report.Extractions)
	assert.Contains(t, out.String(), "No file found!\n")
	assert.NotContains(t, out.String(), "Extracting files...")
	assert.Empty(t, b.Handles()[0].Extractions())

	exists, err := b.FS().Exists("out")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRun_GlobListing(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		Patches: []string{"p2.ext,base"},
		Pattern: "*.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, []SearchResult{
		{FileName: "c.txt", FullPath: `a\b\c.txt`},
		{FileName: "d.txt", FullPath: `a\d.txt`},
		{FileName: "new.txt", FullPath: "new.txt"},
	}, report.Results)
	assert.Empty(t, report.Extractions)

	want := "Opening 'base.mpq'...\n" +
		"Applying patch 'p2.ext' (prefix 'base')...\n" +
		"\nSearching for '*.txt'...\n" +
		"\nFound files:\n" +
		"  - a\\b\\c.txt\n" +
		"  - a\\d.txt\n" +
		"  - new.txt\n"
	assert.Equal(t, want, out.String())

	h := b.Handles()[0]
	assert.True(t, h.CursorsClosed())
	assert.True(t, h.Closed())
}

func TestRun_GlobExtractHierarchy(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		Pattern:     `a\*`,
		Extract:     true,
		Destination: "out/",
		FullPath:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Extracted())
	assert.Equal(t, "base c", readFile(t, b, "out/a/b/c.txt"))
	assert.Equal(t, "base d", readFile(t, b, "out/a/d.txt"))

	for _, ex := range b.Handles()[0].Extractions() {
		assert.True(t, ex.Patched, ex.Member)
	}
}

func TestRun_Idempotent(t *testing.T) {
	b := newTestBackend()
	opts := Options{
		Pattern:     "*",
		Extract:     true,
		Destination: "out",
		FullPath:    true,
	}

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", opts)
		require.NoError(t, err)
		assert.Empty(t, report.Failures(), "run %d", i+1)
		assert.Equal(t, 3, report.Extracted(), "run %d", i+1)
	}
	assert.Equal(t, "logo", readFile(t, b, "out/Interface/Logo.BLP"))
}

func TestRun_FailuresDoNotAbort(t *testing.T) {
	b := newTestBackend()
	b.Add("bad.mpq",
		memory.File(`a\b\c.txt`, "c"),
		memory.File(`..\escape.txt`, "evil"),
		memory.File(`z.txt`, "z"),
	)
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "bad.mpq", Options{
		Patches:     []string{"missing.ext", "p2.ext,base"},
		Pattern:     "*",
		Extract:     true,
		Destination: "out",
		FullPath:    true,
	})
	require.NoError(t, err)

	require.Len(t, report.Patches, 2)
	require.Error(t, report.Patches[0].Err)
	assert.Equal(t, errors.CodePatchFailed, errors.GetCode(report.Patches[0].Err))
	assert.False(t, errors.IsFatal(report.Patches[0].Err))
	assert.NoError(t, report.Patches[1].Err)

	require.Len(t, report.Extractions, 5)
	var failed []string
	for _, e := range report.Extractions {
		if e.Err != nil {
			failed = append(failed, e.Result.FullPath)
			assert.Equal(t, errors.CodeSecurityViolation, errors.GetCode(e.Err))
		}
	}
	assert.Equal(t, []string{`..\escape.txt`}, failed)
	assert.Equal(t, "z", readFile(t, b, "out/z.txt"))
	assert.Equal(t, "p2 new", readFile(t, b, "out/new.txt"))

	exists, err := b.FS().Exists("escape.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRun_ExactModeIsSpeculative(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		Pattern:     `no\such\file.txt`,
		Extract:     true,
		Destination: "out",
	})
	require.NoError(t, err)

	require.Equal(t, []SearchResult{{FileName: "file.txt", FullPath: `no\such\file.txt`}}, report.Results)
	require.Len(t, report.Extractions, 1)

	extErr := report.Extractions[0].Err
	require.Error(t, extErr)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(extErr))
	assert.False(t, errors.IsFatal(extErr))
	assert.ErrorIs(t, extErr, archive.ErrMemberNotFound)
	assert.Contains(t, extErr.Error(), `failed to extract the file 'no\such\file.txt' in out/file.txt`)
}

func TestRun_LowerCase(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	_, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		Pattern:     `Interface\*`,
		Extract:     true,
		Destination: "out",
		FullPath:    true,
		LowerCase:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "logo", readFile(t, b, "out/interface/logo.blp"))
}

func TestRun_ListFile(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "base.mpq", Options{
		ListFile: "list.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, "list.txt", report.ListFile)
	assert.Equal(t, "a\\b\\c.txt\r\na\\d.txt\r\nInterface\\Logo.BLP\r\n", readFile(t, b, "list.txt"))
}

func TestRun_OpenFailureIsFatal(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer

	report, err := newTestSession(b, &out).Run(context.Background(), "missing.mpq", Options{Pattern: "*"})
	require.Error(t, err)
	require.NotNil(t, report)

	assert.Equal(t, errors.CodeArchiveOpen, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
	var coded errors.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, "failed to open the file 'missing.mpq'", coded.Message())
	assert.Equal(t, "missing.mpq", coded.Context()["archive"])
	assert.Equal(t, "Opening 'missing.mpq'...\n", out.String())
}

// listFailingBackend wraps a backend so ExtractSpecial always fails.
type listFailingBackend struct {
	archive.Backend
}

type listFailingHandle struct {
	archive.Handle
}

func (b listFailingBackend) Open(ctx context.Context, path string) (archive.Handle, error) {
	h, err := b.Backend.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return listFailingHandle{h}, nil
}

func (listFailingHandle) ExtractSpecial(context.Context, string, string) error {
	return stderrors.New("disk full")
}

func TestRun_ListFileFailureIsFatal(t *testing.T) {
	b := newTestBackend()
	var out bytes.Buffer
	s := New(listFailingBackend{b}, WithFS(b.FS()), WithOutput(&out))

	_, err := s.Run(context.Background(), "base.mpq", Options{
		ListFile: "list.txt",
		Patches:  []string{"p1.ext"},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeListFile, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))

	// The archive is closed and nothing after the list file ran.
	h := b.Handles()[0]
	assert.True(t, h.Closed())
	assert.Empty(t, h.Layered())
}

func TestReport_Summary(t *testing.T) {
	r := &Report{
		Patches: []PatchOutcome{{}, {Err: stderrors.New("x")}},
		Results: []SearchResult{{}, {}},
		Extractions: []ExtractionOutcome{
			{},
			{Err: stderrors.New("y")},
		},
	}
	assert.Equal(t, "1/2 patches applied, 2 files found, 1/2 files extracted", r.Summary())
	assert.Len(t, r.Failures(), 2)
}

func TestExtractAll_ClosedHandleStops(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend()
	s := New(b, WithFS(b.FS()))

	h, err := b.Open(ctx, "base.mpq")
	require.NoError(t, err)
	require.NoError(t, h.Close())

	outcomes := s.ExtractAll(ctx, h, []SearchResult{
		{FileName: "c.txt", FullPath: `a\b\c.txt`},
		{FileName: "d.txt", FullPath: `a\d.txt`},
	}, Layout{Root: "out"})

	require.Len(t, outcomes, 1)
	assert.Equal(t, errors.CodeClosed, errors.GetCode(outcomes[0].Err))
	assert.True(t, errors.IsFatal(outcomes[0].Err))
}
