package value

// Arena identifiers are opaque, comparable, and cheap to copy. Each arena
// dispenses identifiers from its own monotonically increasing counter;
// the Store never recycles one, even after the garbage collector frees
// the entry it named (§3, §4.A).
type (
	StringID      int64
	SymbolID      int64
	KeywordID     int64
	ConsID        int64
	ObjectID      int64
	FunctionID    int64
	EnvironmentID int64
)
