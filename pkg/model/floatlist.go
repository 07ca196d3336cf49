package model

import (
	"bytes"
	"math"

	json "github.com/goccy/go-json"
)

// FloatList is a []float64 whose JSON form may contain null entries for
// missing values. JSON has no NaN literal, so upstream serializers write
// null where a repeat contributed no measurement; those entries decode to
// NaN and encode back to null.
type FloatList []float64

var nullBytes = []byte("null")

// UnmarshalJSON decodes a JSON array, mapping null elements to NaN.
func (f *FloatList) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	*f = out
	return nil
}

// MarshalJSON encodes the list, mapping NaN elements to null.
func (f FloatList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) {
			buf.Write(nullBytes)
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
