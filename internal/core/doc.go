// Package core provides the pipeline that turns uploaded tabular data into
// a chart-ready structure.
//
// This package contains all decision logic independent of any transport.
// It can be used by the web server, the CLI, or tests without modification.
//
// # Pipeline
//
// Data flows strictly forward:
//
//  1. Resolve: [Registry.Resolve] picks a decoder. Files are dispatched on
//     their extension (.xlsx, .json, .csv). Text is tried as a JSON table
//     first and as comma-separated text when it is not JSON at all.
//  2. Decode: the chosen [DecodeFunc] builds a [Table]. Delimited text is
//     read as UTF-8 and retried once as CP932.
//  3. Project: [ProjectWith] partitions columns into numeric and other,
//     picks labels, fills absent values and assigns palette colors.
//
// [Service.Parse] runs all three and is the entry point for callers.
//
// # Column Typing
//
// Each [Column] is typed once when the table is built: numeric when every
// present cell is an integer or decimal literal, text otherwise. Absent
// cells stay absent until the [ChartBundle] boundary, where they become 0
// in datasets and "" in raw records.
//
// # Format Registry
//
// The [Registry] is an immutable extension-to-decoder table built at
// startup. New formats are added by registering another [Format]:
//
//	reg := core.NewRegistry(
//	    core.SpreadsheetFormat(),
//	    core.JSONFormat(),
//	    core.CSVFormat(),
//	)
//
// A format registered through [Format.Unavailable] fails with
// KindMissingCapability, which tells operators to install the decoder.
//
// # Error Handling
//
// Every pipeline error is a [*ParseError] with an [ErrorKind]. [MapError]
// turns any error into a [UserMessage] with a support code, and
// [ErrorKind.IsCallerError] separates input problems from server problems.
package core
