package io

// Contains a contiguous chunk of records read from a source and the index of its first record
type WorkUnit struct {
	Offset  int
	Records []RawRecord
}
