// Package writers serializes query results to text (TSV) or JSON
// Lines, selected by a format-string registry (query.go) in the same
// style as the teacher's product-writer dispatch maps.
package writers
