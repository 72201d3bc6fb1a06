// Package summary reduces a table of health-check rows into an HTML digest.
//
// Rows arrive as comma-joined strings, one per probe of one host. Most
// columns either never change across the rows being reported (the OS
// version, a fixed port list) or hold numbers that are better read as a
// spread than as a column of values. The package exploits both:
//
//   - Invariant columns are pulled out of the table and listed once under
//     "Constants".
//   - Numeric columns (optionally unit-suffixed, optionally several values
//     per cell joined with "_") are summarised under "Statistics" as mean,
//     sample standard deviation, min, max and a count of missing values.
//
// # Cell Grammar
//
// A cell is numeric ("rangeable") when every "_"-separated piece is either
// the literal None or a non-negative decimal with an optional unit:
//
//	42  .5  1.3Gi  124G  48_64  None_64
//
// Every unit (K, Ki, KB, M, Mi, MB, G, Gi, GB, T, Ti, TB) scales by powers
// of 1024. Tools like free and df print G meaning GiB, so the decimal
// spellings are read the same way.
//
// # Display
//
// Statistics are rounded to two decimal places and anything above 999 is
// shown with an IEC prefix (30750000 becomes 29Mi). Integral inputs stay
// integral where the arithmetic allows, so a minimum of 5 prints as 5 and
// not 5.0.
//
// Everything here is a pure function of its inputs; concurrent callers need
// no coordination.
package summary
