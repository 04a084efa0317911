// Package core defines the filesystem contracts the extractor writes through.
//
// Extraction never touches the os package directly: directories are
// materialized and member files are written through an FS, so runs can be
// pointed at the local disk or at an in-memory tree in tests.
//
// # Interface Hierarchy
//
// The FS interface is composed of three sub-interfaces:
//
//   - ReadFS: Open, Stat, ReadDir, ReadFile, Exists
//   - WriteFS: Create, OpenFile, WriteFile, Mkdir, MkdirAll
//   - ManageFS: Remove, RemoveAll, Rename
//
// Providers live in github.com/Kanma/MPQExtractor/fs/billy.
//
// # Usage Example
//
//	func save(filesystem core.FS, name string, r io.Reader) error {
//	    _, err := core.WriteFrom(filesystem, name, r)
//	    return err
//	}
package core
