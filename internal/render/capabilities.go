package render

// Capabilities describes the SQL and driver features supported by a dialect.
type Capabilities struct {
	Returning          bool // RETURNING clause on INSERT
	NumberedParameters bool // $1 / @p1 placeholders instead of ?
	NativeBoolean      bool // driver binds bool values without conversion
	NativeTime         bool // driver binds time.Time values without conversion
	OffsetFirst        bool // Limit writes the offset before the row count
	BracketIdentifiers bool // [name] quotes an identifier
}
