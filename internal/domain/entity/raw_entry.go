package entity

// RawEntry is one raw feed entry for a single date: a flat mapping of feed
// field names to their textual values, exactly as decoded from the wire.
// Interpretation (field aliases, numeric parsing, date extraction) belongs
// to the record parser, not to the feed client that produced the entry.
type RawEntry map[string]string
