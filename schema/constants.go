package schema

// Custom string types for type safety.
type (
	// Metric represents the business quantity a record measures.
	Metric string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for storage and caching.
	DatabaseBackend string

	// ViewPart selects which half of a view is printed.
	ViewPart string
)

// All metrics supported.
const (
	SalesMetric        Metric = "sales" // default
	PurchasesMetric    Metric = "purchases"
	ConsumptionMetric  Metric = "consumption"
	ManufactureMetric  Metric = "manufacture"
	MaterialCostMetric Metric = "material_cost"
	HandlingCostMetric Metric = "handling_cost"
	TotalCostMetric    Metric = "total_cost"
	MarginMetric       Metric = "margin"
)

// Auxiliary field names used by convention in records.
const (
	AuxQuantity  = "quantity"
	AuxUnitPrice = "unit_price"
	AuxUnitCost  = "unit_cost"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	HTMLOut    OutputMode = "html"
	XLSXOut    OutputMode = "xlsx"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All view parts supported.
const (
	SeriesPart ViewPart = "series"
	TablePart  ViewPart = "table"
	FullView   ViewPart = "view"
)

// Synthetic "Other" group identity.
const (
	OtherKey   = "__other__"
	OtherLabel = "Other"
)

// AllMetrics returns a list of all supported metrics in display order.
var AllMetrics = []Metric{
	SalesMetric,
	PurchasesMetric,
	ConsumptionMetric,
	ManufactureMetric,
	MaterialCostMetric,
	HandlingCostMetric,
	TotalCostMetric,
	MarginMetric,
}

// MetricDescriptions gives a one-line description for each metric.
var MetricDescriptions = map[Metric]string{
	SalesMetric:        "Units or revenue sold per customer or product",
	PurchasesMetric:    "Purchased amounts per supplier or material",
	ConsumptionMetric:  "Material consumed by production",
	ManufactureMetric:  "Quantities manufactured per product",
	MaterialCostMetric: "Material cost contribution",
	HandlingCostMetric: "Handling cost contribution",
	TotalCostMetric:    "Total cost contribution",
	MarginMetric:       "Margin contribution",
}

// ValidMetrics lists all valid metrics.
var ValidMetrics = map[Metric]struct{}{
	SalesMetric:        {},
	PurchasesMetric:    {},
	ConsumptionMetric:  {},
	ManufactureMetric:  {},
	MaterialCostMetric: {},
	HandlingCostMetric: {},
	TotalCostMetric:    {},
	MarginMetric:       {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
	HTMLOut:    {},
	XLSXOut:    {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidStoreBackends lists the backends that can hold records.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
