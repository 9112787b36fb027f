// Package pipeline runs a stream of query patterns through a loaded
// msri-core engine.Engine across a bounded worker pool, re-sequencing
// results back into input order before handing them to a visit
// callback.
package pipeline
