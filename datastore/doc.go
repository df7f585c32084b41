/*
Package datastore defines the store adapter consumed by slotstore's typed slots.

The main interface is Store, a loosely typed key-value surface modeled after a
settings store:

	type Store interface {
	    Integer(key string) int64
	    Double(key string) float64
	    Float(key string) float32
	    Bool(key string) bool
	    String(key string) (string, bool)
	    Bytes(key string) ([]byte, bool)
	    Array(key string) ([]any, bool)
	    Map(key string) (map[string]any, bool)
	    Object(key string) (any, bool)
	    Set(key string, value any)
	    Remove(key string)
	}

Records are held in a canonical form: int64, float64, float32, bool, string, []byte,
time.Time, []any and map[string]any, nested to any depth. The package-level helpers
(Integer, Double, String, ...) derive the typed getters from Object so adapters only need
to produce canonical records.

Implementations:
  - mock: In-memory store with recording hooks for tests
  - bolt: bbolt file store
  - sqlite: SQLite table store
  - ddb: DynamoDB table store

Optional capabilities are expressed as small interfaces: NestingLimiter for stores with a
maximum collection depth and Lister for stores that can enumerate keys.
*/
package datastore
