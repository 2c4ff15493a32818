// Package rpametrics provides the types and functions behind the RPA metrics
// dashboard. It turns the automation-run observations exported from the RPA
// platform into the figures shown to business stakeholders.
//
// The core functionalities include:
//   - Data Model: Run is one monthly observation of a process on a machine,
//     FunctionalSavings is the optional per functional area savings table.
//   - Filtering: Filter selects runs by years, months, business area,
//     process and machine. Criteria are combined conjunctively.
//   - Time Bucketing: Aggregate sums runs per day, week, month, quarter or
//     year, in chronological order.
//   - Breakdowns: rankings, hierarchies and matrices of the filtered runs by
//     business dimension.
//   - Dashboard: NewDashboard computes every metric for one selection.
//
// Loading, rendering and serving live in the sub packages. This package is
// pure: it never reads files and never mutates its inputs.
package rpametrics
