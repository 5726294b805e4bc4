package guest

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field names shared by drafts, records and OCR results.
const (
	FieldFullName = "full_name"
	FieldPhone    = "phone"
	FieldIDType   = "id_type"
	FieldIDNumber = "id_number"
)

const (
	unknownName  = "Unknown"
	missingValue = "—"
)

// Draft is a guest record being edited at the front desk, not yet saved.
// Empty fields are valid.
type Draft struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	IDType   string `json:"id_type" form:"id_type"`
	IDNumber string `json:"id_number" form:"id_number"`
}

// Record is a guest as persisted by the backend. Decoding is lenient: a field
// of an unexpected JSON type is kept as text instead of failing the record.
type Record struct {
	ID       RecordID `json:"_id"`
	FullName string   `json:"full_name"`
	Phone    string   `json:"phone"`
	IDType   string   `json:"id_type"`
	IDNumber string   `json:"id_number"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{
		FullName: lenientText(raw[FieldFullName]),
		Phone:    lenientText(raw[FieldPhone]),
		IDType:   lenientText(raw[FieldIDType]),
		IDNumber: lenientText(raw[FieldIDNumber]),
	}
	if id, ok := raw["_id"]; ok {
		if err := json.Unmarshal(id, &r.ID); err != nil {
			return err
		}
	}
	return nil
}

// RecordID accepts string, numeric and structured identifiers from the
// backend. Structured ones are kept as their JSON text.
type RecordID string

func (id *RecordID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = RecordID(n.String())
		return nil
	}
	*id = RecordID(data)
	return nil
}

// Card is the display form of a Record in the recent guests list.
type Card struct {
	ID     string
	Name   string
	Phone  string
	IDLine string
}

// Card renders the record the way the recent guests list shows it.
func (r Record) Card() Card {
	name := r.FullName
	if name == "" {
		name = unknownName
	}
	phone := r.Phone
	if phone == "" {
		phone = missingValue
	}
	number := r.IDNumber
	if number == "" {
		number = missingValue
	}
	return Card{
		ID:     string(r.ID),
		Name:   name,
		Phone:  phone,
		IDLine: strings.ToUpper(r.IDType) + ": " + number,
	}
}

// OCRResult holds the fields extracted from an identity document. Fields the
// dashboard does not know about are kept in Extra.
type OCRResult struct {
	IDType   string
	IDNumber string
	FullName string
	Extra    map[string]any
}

func (r *OCRResult) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = OCRResult{Extra: map[string]any{}}
	for key, value := range raw {
		switch key {
		case FieldIDType:
			r.IDType = truthyString(value)
		case FieldIDNumber:
			r.IDNumber = truthyString(value)
		case FieldFullName:
			r.FullName = truthyString(value)
		default:
			r.Extra[key] = value
		}
	}
	return nil
}

func (r OCRResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+3)
	for key, value := range r.Extra {
		out[key] = value
	}
	out[FieldIDType] = r.IDType
	out[FieldIDNumber] = r.IDNumber
	out[FieldFullName] = r.FullName
	return json.Marshal(out)
}

// MergeOCR seeds a draft from an OCR result. A recognized field replaces the
// draft value only when it is non-empty; phone is never touched.
func MergeOCR(d Draft, r OCRResult) Draft {
	if r.FullName != "" {
		d.FullName = r.FullName
	}
	if r.IDType != "" {
		d.IDType = r.IDType
	}
	if r.IDNumber != "" {
		d.IDNumber = r.IDNumber
	}
	return d
}

// lenientText decodes a raw JSON field as text. Missing, malformed and falsy
// values become the empty string.
func lenientText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return truthyString(value)
}

// truthyString renders a decoded JSON value as text, mapping falsy values
// (null, false, 0, "") to the empty string.
func truthyString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return ""
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
