package types

// Page is one server-returned batch of items plus pagination metadata.
type Page[T any] struct {
	Items      []T
	TotalCount int
	HasNext    bool
}

// PageQuery selects a page. Ordering is passed through to the server untouched.
type PageQuery struct {
	Page     int
	PageSize int
	Ordering string
}

// InverterFilters narrows the inverter list. Zero values are omitted from the request.
type InverterFilters struct {
	City     *int
	Region   *int
	Partner  string
	Search   string
	MinPower *float64
	MaxPower *float64
	Lang     string
}

// EnergyDataQuery narrows the telemetry of one inverter.
type EnergyDataQuery struct {
	Aggregation string
	StartDate   string
	EndDate     string
	Types       []string
}
