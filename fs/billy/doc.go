// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps go-billy's osfs and is what the command line extracts into.
// MemoryFS wraps memfs and backs tests that need a destination tree without
// touching the disk.
//
// Usage:
//
//	// Destination on disk, relative names resolved against the working directory
//	fsys := billy.NewLocal()
//
//	// Destination in memory
//	fsys := billy.NewMemory()
//	err := fsys.MkdirAll("out/a", 0o755)
//
// FS instances are safe for concurrent use by multiple goroutines. File
// handles are not.
package billy
