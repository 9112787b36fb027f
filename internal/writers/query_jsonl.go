// internal/writers/query_jsonl.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"
)

// wireQueryResult is QueryResult's JSON Lines wire shape: omit
// pointers/doc_ids entirely rather than emitting null/empty arrays
// when the engine mode or attachment didn't produce them.
type wireQueryResult struct {
	ID       int      `json:"id"`
	Lengths  []int    `json:"lengths"`
	Pointers []int    `json:"pointers,omitempty"`
	DocIDs   []uint32 `json:"doc_ids,omitempty"`
}

func init() {
	RegisterQuery("jsonl", writeQueryJSONL)
}

func writeQueryJSONL(w io.Writer, payload interface{}) error {
	r, ok := payload.(QueryResult)
	if !ok {
		return fmt.Errorf("writers: query JSONL writer given %T, want QueryResult", payload)
	}
	return json.NewEncoder(w).Encode(toWireQueryResult(r))
}

func toWireQueryResult(r QueryResult) wireQueryResult {
	return wireQueryResult{ID: r.ID, Lengths: r.Lengths, Pointers: r.Pointers, DocIDs: r.DocIDs}
}
