package rpametrics

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// All is the categorical filter value that selects everything.
const All = "All"

// Filter selects the runs shown by the dashboard. Every criterion is an
// inclusion predicate and they are combined with AND. An empty set or an
// empty/All value does not restrict anything.
type Filter struct {
	Years        []int    `json:"years,omitempty"`
	Months       []string `json:"months,omitempty"`
	BusinessArea string   `json:"business_area,omitempty"`
	Process      string   `json:"process,omitempty"`
	Machine      string   `json:"machine,omitempty"`
}

func unrestricted(v string) bool { return v == "" || v == All }

// Match reports whether the run passes every criterion.
func (f Filter) Match(r Run) bool {
	if len(f.Years) > 0 && !slices.Contains(f.Years, r.Year) {
		return false
	}
	if len(f.Months) > 0 && !slices.ContainsFunc(f.Months, func(m string) bool { return strings.EqualFold(m, r.Month) }) {
		return false
	}
	if !unrestricted(f.BusinessArea) && r.BusinessArea != f.BusinessArea {
		return false
	}
	if !unrestricted(f.Process) && r.Process != f.Process {
		return false
	}
	if !unrestricted(f.Machine) && r.Machine != f.Machine {
		return false
	}
	return true
}

// Apply returns the runs that match the filter, in input order. The input is
// left untouched.
func (f Filter) Apply(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// IsZero reports whether the filter keeps every run.
func (f Filter) IsZero() bool {
	return len(f.Years) == 0 && len(f.Months) == 0 && unrestricted(f.BusinessArea) && unrestricted(f.Process) && unrestricted(f.Machine)
}

// FilterOptions are the values offered by the dashboard sidebar.
type FilterOptions struct {
	Years         []int    `json:"years"`
	Months        []string `json:"months"`
	BusinessAreas []string `json:"business_areas"`
	Processes     []string `json:"processes"`
	Machines      []string `json:"machines"`
}

// Options computes the filter choices for the current selection. Months are
// restricted to the selected years and processes to the selected business
// area.
func Options(runs []Run, f Filter) FilterOptions {
	years := map[int]bool{}
	months := map[string]time.Month{}
	areas := map[string]bool{}
	processes := map[string]bool{}
	machines := map[string]bool{}
	for _, r := range runs {
		years[r.Year] = true
		if len(f.Years) == 0 || slices.Contains(f.Years, r.Year) {
			months[r.Month] = time.Month(r.MonthNum)
		}
		areas[r.BusinessArea] = true
		if unrestricted(f.BusinessArea) || r.BusinessArea == f.BusinessArea {
			processes[r.Process] = true
		}
		machines[r.Machine] = true
	}

	var opts FilterOptions
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Years)
	for m := range months {
		opts.Months = append(opts.Months, m)
	}
	sort.Slice(opts.Months, func(i, j int) bool { return months[opts.Months[i]] < months[opts.Months[j]] })
	opts.BusinessAreas = append([]string{All}, sortedKeys(areas)...)
	opts.Processes = append([]string{All}, sortedKeys(processes)...)
	opts.Machines = append([]string{All}, sortedKeys(machines)...)
	return opts
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
