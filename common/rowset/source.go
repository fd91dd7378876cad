package rowset

// Source is a live, forward-only cursor bound to an open connection.
type Source interface {
	// Next advances to the next row, false when exhausted or on error.
	Next() bool
	// Values returns the raw column values of the current row, 0-based.
	Values() ([]interface{}, error)
	Metadata() (MetadataSource, error)
	Err() error
}

// MetadataSource describes the columns of a live cursor. Column numbers are 1-based.
type MetadataSource interface {
	ColumnCount() int
	Column(column int) (ColumnDescriptor, error)
}

// Properties is implemented by sources that expose scroll and fetch settings.
type Properties interface {
	FetchDirection() FetchDirection
	FetchSize() int
	Warnings() []string
}

type FetchDirection int

const (
	FetchForward FetchDirection = iota
	FetchReverse
	FetchUnknown
)

func (d FetchDirection) String() string {
	switch d {
	case FetchForward:
		return "FORWARD"
	case FetchReverse:
		return "REVERSE"
	default:
		return "UNKNOWN"
	}
}

// Nullability codes of ColumnDescriptor.Nullable.
const (
	ColumnNoNulls         = 0
	ColumnNullable        = 1
	ColumnNullableUnknown = 2
)

// ColumnDescriptor is everything known about one column.
type ColumnDescriptor struct {
	Name        string
	Label       string
	TypeName    string
	ClassName   string
	TableName   string
	SchemaName  string
	CatalogName string
	Precision   int
	Scale       int
	DisplaySize int
	Nullable    int

	Signed        bool
	Searchable    bool
	ReadOnly      bool
	Writable      bool
	AutoIncrement bool
	CaseSensitive bool
	Currency      bool
}
