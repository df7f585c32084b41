/*
Package registry manages the set of third-party types slotstore treats as natively
storable.

A registered type is classified as a native value: typed slots write the converter's
canonical record straight into the store instead of serializing the value with the byte
codec, and rebuild the value from the record on read.

	registry.RegisterNative[netip.Addr](registry.Converter{
	    ToStore: func(v any) (any, bool) {
	        return v.(netip.Addr).String(), true
	    },
	    FromStore: func(record any, _ bool) (any, bool) {
	        s, ok := record.(string)
	        if !ok {
	            return nil, false
	        }
	        addr, err := netip.ParseAddr(s)
	        return addr, err == nil
	    },
	})

uuid.UUID (stored as its string form), strfmt.DateTime and strfmt.Date (stored as
timestamps) are registered by default.

The registry is thread-safe and should be populated during initialization,
typically in init() functions.
*/
package registry
