package schema

// Dataset is one stacked series of a rendered chart.
type Dataset struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Values  []float64 `json:"values"`
	Color   string    `json:"color"`
	IsOther bool      `json:"is_other"`
	Total   float64   `json:"total"`
}

// PointAnnotation describes how one bucket of the chart is styled.
// Buckets without events carry Emphasized=false and an empty Tooltip.
type PointAnnotation struct {
	Emphasized bool     `json:"emphasized"`
	Tooltip    []string `json:"tooltip"`
}

// RenderSeries is the render-ready chart structure.
// Datasets are in stacking order: "Other" first, rank 0 last.
type RenderSeries struct {
	Labels      []string          `json:"labels"`
	Datasets    []Dataset         `json:"datasets"`
	Annotations []PointAnnotation `json:"annotations"`
}

// IsEmpty reports whether the series has no datasets or every value is zero.
func (r RenderSeries) IsEmpty() bool {
	for _, ds := range r.Datasets {
		for _, v := range ds.Values {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// TableRow is one group in the table summary.
type TableRow struct {
	Rank           int                `json:"rank"`
	Key            string             `json:"key"`
	Name           string             `json:"name"`
	Total          float64            `json:"total"`
	Percent        float64            `json:"percent"`
	MonthlyAverage float64            `json:"monthly_average"`
	Aux            map[string]float64 `json:"aux,omitempty"`
}

// TableSummary covers every group, not only the charted top-K.
type TableSummary struct {
	Rows       []TableRow `json:"rows"`
	GrandTotal float64    `json:"grand_total"`
	Months     int        `json:"months"`
}

// View bundles the chart and the table for one query.
type View struct {
	Metric Metric       `json:"metric"`
	Window []string     `json:"window"`
	TopK   int          `json:"top_k"`
	Series RenderSeries `json:"series"`
	Table  TableSummary `json:"table"`
}
