package dataset

import "encoding/json"

type tableJSON struct {
	Name    string          `json:"name,omitempty"`
	Columns []Column        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// MarshalJSON encodes the dataset as column descriptors plus row arrays, null for missing
func (d *Dataset) MarshalJSON() ([]byte, error) {
	out := tableJSON{
		Name:    d.Name(),
		Columns: d.Columns(),
		Rows:    make([][]interface{}, d.NumRows()),
	}
	if out.Columns == nil {
		out.Columns = []Column{}
	}
	for i := range out.Rows {
		out.Rows[i] = d.Row(i)
	}
	return json.Marshal(out)
}
