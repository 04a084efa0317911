// Package errors provides the structured error handling used across the extractor.
//
// It extends Go's standard error handling with error codes, a fatal/recoverable
// classification and context metadata, while remaining compatible with the
// standard library errors package (errors.Is, errors.As, errors.Unwrap).
//
// # Classification
//
// Every error is either fatal or recoverable:
//
//   - Fatal: the run cannot continue (archive cannot be opened, bad command line,
//     list file cannot be extracted). The CLI exits with a non-zero code.
//   - Recoverable: a single item failed (one patch, one member). The failure is
//     logged and the batch moves on to the next item.
//
// Each code has a default classification. Wrapping preserves the classification
// of a wrapped coded error, and WithClassification overrides it.
//
// # Quick Start
//
//	err := errors.New(errors.CodeArchiveOpen, "cannot open archive")
//	err = errors.WithContext(err, "path", path)
//
//	if err := h.LayerPatch(ctx, p, prefix); err != nil {
//	    return errors.Wrapf(err, errors.CodePatchFailed, "failed to apply the patch '%s'", p)
//	}
//
//	if errors.IsFatal(err) {
//	    os.Exit(1)
//	}
package errors
