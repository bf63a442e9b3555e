package stardog

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// SelectResults is a SPARQL 1.1 query results document in its JSON serialization.
// The document received from the server is retained and written back verbatim by MarshalJSON,
// so exported files keep the server's field order and any fields not modelled here.
type SelectResults struct {
	Head    Head      `json:"head"`
	Results *Bindings `json:"results,omitempty"`
	Boolean *bool     `json:"boolean,omitempty"`

	raw json.RawMessage
}

type Head struct {
	Vars []string `json:"vars,omitempty"`
	Link []string `json:"link,omitempty"`
}

// Bindings holds one solution per element, keyed by variable name. The RDF terms are kept as
// received: besides uri, literal and bnode terms, servers with RDF-star support return
// "triple" terms whose value is itself an object.
type Bindings struct {
	Bindings []map[string]json.RawMessage `json:"bindings"`
}

func (r *SelectResults) UnmarshalJSON(b []byte) error {
	type plain SelectResults
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Results == nil && p.Boolean == nil {
		return errors.New("not a SPARQL results document: neither results nor boolean present")
	}
	*r = SelectResults(p)
	r.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (r SelectResults) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	type plain SelectResults
	return json.Marshal(plain(r))
}

func (r *SelectResults) Vars() []string {
	return r.Head.Vars
}

// Len is the number of solutions. ASK results have none.
func (r *SelectResults) Len() int {
	if r.Results == nil {
		return 0
	}
	return len(r.Results.Bindings)
}

// AskResult returns the answer of an ASK query; ok is false for SELECT results.
func (r *SelectResults) AskResult() (answer bool, ok bool) {
	if r.Boolean == nil {
		return false, false
	}
	return *r.Boolean, true
}
