package rpametrics

// Option configures NewDashboard.
type Option func(*options)

type options struct {
	currency     string
	topN         int
	efficiencyN  int
	performersN  int
	applicationN int
}

// WithCurrency sets the currency of the savings amounts.
func WithCurrency(currency string) Option {
	return func(o *options) {
		if currency != "" {
			o.currency = currency
		}
	}
}

// WithTopN sets the length of the top process, application and performer rankings.
func WithTopN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topN = n
			o.applicationN = n
			o.performersN = n
		}
	}
}

// WithEfficiencyN sets the number of processes of the efficiency bubble chart.
func WithEfficiencyN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.efficiencyN = n
		}
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		currency:     DefaultCurrency,
		topN:         10,
		efficiencyN:  15,
		performersN:  10,
		applicationN: 10,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Dashboard holds everything displayed for one filter selection.
type Dashboard struct {
	Filter   Filter        `json:"filter"`
	Period   Period        `json:"period"`
	Currency string        `json:"currency"`
	Options  FilterOptions `json:"options"`
	Rows     []Run         `json:"-"`

	KPIs    KPIs    `json:"kpis"`
	Summary Summary `json:"summary"`

	Trend      []Bucket `json:"trend"`
	Cumulative []Bucket `json:"cumulative"`

	TopProcesses         []Group     `json:"top_processes"`
	HoursByArea          []Group     `json:"hours_by_area"`
	SavingsByMonth       []Group     `json:"savings_by_month"`
	SuccessVsExceptions  []Group     `json:"success_vs_exceptions"`
	ExecutionsByArea     []Group     `json:"executions_by_area"`
	SavingsByApplication []Group     `json:"savings_by_application"`
	HoursByMachine       []Group     `json:"hours_by_machine"`
	ProcessTree          []Group     `json:"process_tree"`
	ApplicationTree      []Group     `json:"application_tree"`
	SavingsTree          []Group     `json:"savings_tree"`
	Efficiency           []Group     `json:"efficiency"`
	Heatmap              Matrix      `json:"heatmap"`
	YearOverYear         Matrix      `json:"year_over_year"`
	TopPerformers        []Performer `json:"top_performers"`
	Funnel               []Stage     `json:"funnel"`

	FunctionalSavings *FunctionalSavings `json:"functional_savings,omitempty"`
}

// NewDashboard filters the dataset and computes every metric of the
// dashboard. An empty selection yields zero values, never an error.
func NewDashboard(ds *Dataset, f Filter, p Period, opts ...Option) *Dashboard {
	o := applyOptions(opts)
	rows := f.Apply(ds.Runs)
	trend := Aggregate(rows, p)

	cumulative := make([]Bucket, len(trend))
	for i, total := range Cumulative(trend) {
		cumulative[i] = Bucket{Label: trend[i].Label, Totals: Totals{Savings: total}}
	}

	return &Dashboard{
		Filter:   f,
		Period:   p,
		Currency: o.currency,
		Options:  Options(ds.Runs, f),
		Rows:     rows,

		KPIs:    ComputeKPIs(rows, o.currency),
		Summary: Summarize(rows, o.currency),

		Trend:      trend,
		Cumulative: cumulative,

		TopProcesses:         TopProcesses(rows, o.topN),
		HoursByArea:          HoursByArea(rows),
		SavingsByMonth:       SavingsByMonth(rows),
		SuccessVsExceptions:  SuccessVsExceptions(rows, o.topN),
		ExecutionsByArea:     ExecutionsByArea(rows),
		SavingsByApplication: SavingsByApplication(rows, o.applicationN),
		HoursByMachine:       HoursByMachine(rows),
		ProcessTree:          Hierarchy(rows, ByBusinessArea, ByProcess),
		ApplicationTree:      Hierarchy(rows, ByBusinessArea, ByBusinessSubArea, ByApplication),
		SavingsTree:          Hierarchy(rows, ByBusinessArea, ByBusinessSubArea, ByProcess),
		Efficiency:           ProcessEfficiency(rows, o.efficiencyN),
		Heatmap:              SavingsHeatmap(rows),
		YearOverYear:         YearOverYear(rows),
		TopPerformers:        TopPerformers(rows, o.performersN),
		Funnel:               Funnel(rows),

		FunctionalSavings: ds.Savings,
	}
}

// Money returns a savings amount in the dashboard currency.
func (d *Dashboard) Money(v Totals) Money { return M(v.Savings, d.Currency) }
