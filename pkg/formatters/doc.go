// Package formatters renders prices and dates for subscription pages and
// emails. Prices use golang.org/x/text for currency symbols and locale digit
// grouping; dates always render in UTC with an English ordinal day.
package formatters
