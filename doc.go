// Package vcell provides compact, dynamically-typed value cells for building and
// querying nested document-like structures.
//
// Every value, whether a scalar, a byte string, an ordered array or a keyed
// dictionary, lives behind a fixed-size Value slot. Scalars and short strings
// are stored inline in the slot; long strings, arrays and dictionaries keep a
// single exclusively-owned heap handle. This makes vcell a good in-memory
// representation underneath JSON-like encoders and decoders.
//
// # Core Features
//
//   - Fixed 24-byte Value cell with inline scalars and strings up to 13 bytes
//   - Numeric compatibility checks and C-style narrowing getters
//   - Ordered arrays with insert/remove in the middle
//   - Dictionaries backed by a red-black tree, with an optional insertion-order chain
//   - Custom key comparators fixed at construction time
//   - Path expressions ("a/b[2]/c", "[-1]") to read and build nested values
//   - Deep equality, structural xxHash64 hashing and deep cloning
//
// # Basic Usage
//
// Building a document:
//
//	var root vcell.Value
//	defer root.Fini()
//
//	name, _ := root.BuildPath("user/name")
//	_ = name.InitString("gopher")
//
//	tags, _ := root.BuildPath("user/tags/[]")
//	_ = tags.InitString("admin")
//
//	age, _ := root.BuildPath("user/age")
//	age.InitInt32(13)
//
// Reading it back:
//
//	if v := root.Path("user/tags[-1]"); v != nil {
//	    fmt.Println(v.String()) // admin
//	}
//	fmt.Println(root.Path("user/age").Int64()) // 13
//
// # Pointer Invalidation
//
// Arrays and dictionaries store their children contiguously. Any operation that
// adds or removes children may move that storage, so *Value pointers obtained
// from a container are valid only until its next mutation. Pointers into other
// containers are not affected.
//
// # Concurrency
//
// A Value tree is not safe for concurrent use. Callers must serialize access,
// including reads that run concurrently with a write.
package vcell
