// Package container implements archive.Backend over archive files on disk.
//
// Formats are identified and read with github.com/mholt/archives, so any
// container it can extract (zip, tar and its compressed variants, 7z, rar)
// can serve as a base archive or a patch. Member names are exposed with
// backslash separators to match archive-internal naming.
//
// Usage:
//
//	backend := container.New(
//	    container.WithFS(billy.NewLocal()),
//	    container.WithLogger(logger),
//	)
//	h, err := backend.Open(ctx, "data.zip")
package container
