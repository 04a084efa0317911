// Package session runs one extraction against an archive backend.
//
// A run opens the base archive, optionally saves its list file, layers the
// requested patches in order, resolves a search pattern into an ordered list
// of members, and extracts each member's patched view into a destination
// tree. Failures that concern a single patch or a single member are logged
// and recorded in the Report; the run continues. Failures that make the run
// meaningless (the archive cannot be opened, the list file cannot be saved)
// are returned as fatal coded errors.
//
// Usage:
//
//	s := session.New(container.New(),
//	    session.WithLogger(logger),
//	    session.WithOutput(os.Stdout),
//	)
//	report, err := s.Run(ctx, "base.mpq", session.Options{
//	    Patches:     []string{"patch-1.mpq", "patch-2.mpq,base"},
//	    Pattern:     `Interface\*.blp`,
//	    Extract:     true,
//	    Destination: "out",
//	    FullPath:    true,
//	})
package session
