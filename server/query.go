package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/etnz/rpametrics"
)

// ParseQuery reads the filter and the period of a request. Years and months
// are repeatable or comma separated. Month names are normalized to their
// abbreviation.
func ParseQuery(q url.Values) (rpametrics.Filter, rpametrics.Period, error) {
	var f rpametrics.Filter
	p, err := rpametrics.ParsePeriod(q.Get("period"))
	if err != nil {
		return f, p, err
	}
	for _, v := range list(q["year"]) {
		y, err := strconv.Atoi(v)
		if err != nil {
			return f, p, fmt.Errorf("invalid year %q", v)
		}
		f.Years = append(f.Years, y)
	}
	for _, v := range list(q["month"]) {
		m, err := rpametrics.ParseMonth(v)
		if err != nil {
			return f, p, err
		}
		f.Months = append(f.Months, rpametrics.MonthAbbrev(m))
	}
	f.BusinessArea = q.Get("area")
	f.Process = q.Get("process")
	f.Machine = q.Get("machine")
	return f, p, nil
}

// list splits comma separated values and drops the empty ones.
func list(values []string) []string {
	var out []string
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Query encodes a filter and a period back to query parameters.
func Query(f rpametrics.Filter, p rpametrics.Period) url.Values {
	q := url.Values{}
	q.Set("period", p.String())
	for _, y := range f.Years {
		q.Add("year", strconv.Itoa(y))
	}
	for _, m := range f.Months {
		q.Add("month", m)
	}
	for k, v := range map[string]string{"area": f.BusinessArea, "process": f.Process, "machine": f.Machine} {
		if v != "" && v != rpametrics.All {
			q.Set(k, v)
		}
	}
	return q
}
