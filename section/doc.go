// Package section implements the on-disk layout of the parzip container.
//
// A container is a fixed header followed by one frame per chunk, in
// ascending chunk-index order:
//
//	[magic: 4 bytes LE][original_size: 8 bytes LE]
//	repeat per chunk:
//	  [compressed_length: 4 bytes LE]
//	  [compressed_length bytes of codec output]
//
// All integer fields are fixed-width little-endian regardless of host
// architecture, so containers are portable across machines.
//
// Frames carry no index field: chunk boundaries on decode are derived purely
// from the length prefixes, which makes the writer's strict ascending-index
// ordering load-bearing. A container whose frames were written out of order
// would be silently misread as a different partition of the data, so the
// pipeline treats ordering as an invariant, not a preference.
package section
