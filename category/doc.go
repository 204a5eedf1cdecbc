// Package category defines the closed set of log categories used by catlog
// and the display metadata attached to each of them.
//
// Categories are fixed at build time. Adding one is a change to the
// enumeration and to its metadata entry in the same commit.
//
// # Usage
//
//	meta := category.MetaFor(category.API)
//	fmt.Println(meta.Tag, meta.Name) // 🌐 API
package category
