// Package catalog loads the read-only site catalog: calculator categories,
// calculator definitions and blog posts.
//
// The default catalog is embedded in the binary. An alternative YAML file
// with the same layout can be supplied through configuration. Once loaded,
// a Catalog is immutable and safe for concurrent use.
package catalog
