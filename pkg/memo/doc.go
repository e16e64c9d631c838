// Package memo provides a small, generic compute-once-per-key cache.
//
// A Cache runs the compute function for a key at most once for the lifetime
// of the entry, even when many goroutines ask for the same key concurrently.
// Every caller observes the same value, or the same error: failed
// computations are cached too and never retried until the entry is
// explicitly deleted or the cache is reset.
//
// The package backs the per-type field descriptor cache in pkg/field and the
// per-type configuration cache in pkg/config.
//
// # Usage
//
//	var descriptors memo.Cache[reflect.Type, *Set]
//
//	set, err := descriptors.Get(reflect.TypeFor[User](), func() (*Set, error) {
//	    return buildSet()
//	})
//
// The zero value is ready to use.
package memo
