// Package axiom talks to the Axiom APL query API: it builds the
// time-windowed queries the dashboard needs and transposes the
// columnar tabular responses back into rows.
package axiom
