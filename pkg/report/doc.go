/*
Package report computes which report file is expected and checks for it.

The upstream pipeline drops one CSV per calendar date, named DD-MM-YYYY.csv,
into each watched directory by 17:00 US Eastern. Before the cutoff the latest
possible report is yesterday's; at or after it, today's. The expected date is
recomputed from the wall clock on every check and is monotonic non-decreasing
as time advances.
*/
package report
