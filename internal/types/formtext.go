package types

import "encoding/json"

// FormText is an optional form value that never fails to decode.
//
// JSON strings are kept as is and JSON numbers keep their literal text
// (30 becomes "30"). Anything else (null, booleans, arrays, objects)
// decodes to "". Callers coerce the text themselves.
type FormText string

func (f *FormText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FormText(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FormText(n.String())
		return nil
	}

	*f = ""
	return nil
}
