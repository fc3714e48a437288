// Package field provides the typed value model and predicate filters for
// indexed blob fields.
//
// # Values
//
// A field value is a small tagged union:
//
//   - String: field.String("tech")
//   - Int: field.Int(2024)
//   - Float: field.Float(3.14)
//   - Bool: field.Bool(true)
//   - Array: field.Array([]field.Value{...})
//   - Object: field.Object(map[string]field.Value{...})
//
// Values are stored natively in table cells, so a number written as a number
// reads back as a number. Text-encoded structured values written by older
// deployments are handled by DecodeText, which opportunistically parses
// JSON-shaped text and falls back to the raw string.
//
// # Filters
//
// Filters are AND-composed predicates over field values:
//
//	fs := field.NewFilterSet(
//	    field.Eq("category", field.String("tech")),
//	    field.Gt("rating", field.Int(3)),
//	)
//	fs.Matches(fields)
//
// A field that is absent from the document never matches, regardless of the
// operator.
package field
