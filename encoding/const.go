package encoding

const (
	// SentinelAddressDelta escapes a full-width address delta.
	SentinelAddressDelta byte = 0
	// SentinelIndexDelta escapes a full-width bytecode index delta.
	SentinelIndexDelta int8 = 0

	// FullWidthSize is the size of an escaped delta or an inline frame identifier.
	FullWidthSize = 8

	// MaxAddressEntrySize is the largest encoding of one address entry.
	MaxAddressEntrySize = 1 + FullWidthSize
	// MaxOriginEntrySize is the largest encoding of one origin entry.
	MaxOriginEntrySize = 1 + FullWidthSize + 1 + FullWidthSize

	frameAbsent  byte = 0
	framePresent byte = 1
)
