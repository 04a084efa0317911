// Package archive defines the contract between the extraction session and an
// archive backend, plus the pieces every backend shares.
//
// A Backend opens a base archive and returns a Handle. Patch archives are
// layered onto the handle in order; each patch may carry a prefix, in which
// case a member is looked up in that patch as prefix\member. Member names are
// backslash separated.
//
// Backends build on Chain, which models the base archive and its patches as
// an ordered stack of Index values and answers the two questions a backend
// needs: which layer supplies a member, and which members are visible for a
// wildcard search. CompileMatcher implements the wildcard dialect used for
// searches: '*' matches any run of characters including '\', '?' matches a
// single character, and matching ignores case.
//
// Usage:
//
//	h, err := backend.Open(ctx, "base.mpq")
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	_ = h.LayerPatch(ctx, "patch.mpq", "base")
//
//	first, cursor, err := h.FindFirst(ctx, `*.txt`)
//	if errors.Is(err, archive.ErrNoMatch) {
//	    return nil
//	}
//	defer cursor.Close()
//	for m, ok := first, true; ok; m, ok = cursor.Next() {
//	    fmt.Println(m.FullPath)
//	}
package archive
