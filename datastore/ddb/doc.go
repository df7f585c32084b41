/*
Package ddb provides a DynamoDB implementation of datastore.Store.

Every key is one item in a single table:

	PK    <KeyPrefix><key>
	SK    "SLOT"
	Kind  the record shape: integer, double, float, bool, string, bytes, timestamp, array or mapping
	Value the record as a DynamoDB attribute value

DynamoDB has a single number type and no timestamp type, so the Kind attribute restores
the exact type of top-level numbers and timestamps. Inside lists and maps, integral numbers
read back as int64, other numbers as float64, and timestamps as RFC 3339 strings.

The store declares DynamoDB's nesting limit through MaxNesting, so slots over deeper
collections fall back to the opaque byte encoding.

Configuration can come from the environment:

	cfg := ddb.ConfigFromEnv()
	store, err := ddb.New(ctx, cfg)

Each request runs with Config.Timeout. Request failures are logged and reads that fail
report the key as absent.
*/
package ddb
