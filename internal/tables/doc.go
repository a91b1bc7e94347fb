// Package tables reads the catalog and personal-record tables produced by the scraping collaborators.
//
// Both .csv (UTF-8, optional BOM) and .xlsx files are accepted. The first row is always a header;
// columns are located through a [ColumnMap] of candidate header names, and a title column that
// cannot be found falls back to the first column.
//
// Data problems never abort a load. A row missing its title is skipped and an unrecognized status
// is read as no data; both are reported as [RowIssue] values wrapping [shared.ErrMalformedRow].
// Only an absent, unreadable or empty table fails, with an error wrapping [shared.ErrInputMissing].
package tables
