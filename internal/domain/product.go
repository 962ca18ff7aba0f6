package domain

import (
	"bytes"
	"encoding/json"
)

// Product is the nutrition record scraped from one product page.
// Values keep the units shown on the site ("250 kcal"), so every field is text.
type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Calories    string `json:"calories"`
	Fats        string `json:"fats"`
	Carbs       string `json:"carbs"`
	Proteins    string `json:"proteins"`
	Unsaturated string `json:"unsaturated"`
	Sugar       string `json:"sugar"`
	Salt        string `json:"salt"`
	Portion     string `json:"portion"`

	// nulls holds fields that were null or absent in the decoded document
	nulls map[string]bool
}

// Catalog maps a product slug to its record
type Catalog map[string]Product

// Field names as they appear in the persisted document and the HTTP API
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCalories    = "calories"
	FieldFats        = "fats"
	FieldCarbs       = "carbs"
	FieldProteins    = "proteins"
	FieldUnsaturated = "unsaturated"
	FieldSugar       = "sugar"
	FieldSalt        = "salt"
	FieldPortion     = "portion"
)

// FieldNames lists every product field in document order
var FieldNames = []string{
	FieldName, FieldDescription,
	FieldCalories, FieldFats, FieldCarbs, FieldProteins,
	FieldUnsaturated, FieldSugar, FieldSalt, FieldPortion,
}

// Field returns the value stored under the given field name.
// ok is false for unknown names and for fields that were null in the document;
// an empty string is a present value.
func (p Product) Field(name string) (value string, ok bool) {
	switch name {
	case FieldName:
		value = p.Name
	case FieldDescription:
		value = p.Description
	case FieldCalories:
		value = p.Calories
	case FieldFats:
		value = p.Fats
	case FieldCarbs:
		value = p.Carbs
	case FieldProteins:
		value = p.Proteins
	case FieldUnsaturated:
		value = p.Unsaturated
	case FieldSugar:
		value = p.Sugar
	case FieldSalt:
		value = p.Salt
	case FieldPortion:
		value = p.Portion
	default:
		return "", false
	}
	return value, !p.nulls[name]
}

// SetField assigns value to the named field. It reports false for unknown names.
func (p *Product) SetField(name, value string) bool {
	if !p.setValue(name, value) {
		return false
	}
	delete(p.nulls, name)
	return true
}

// IsNull reports whether the named field was null or absent in the document
func (p Product) IsNull(name string) bool {
	return p.nulls[name]
}

// UnmarshalJSON decodes a product object, remembering which fields were null
// or missing so they stay distinguishable from empty strings.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product{}
	for _, name := range FieldNames {
		value, ok := raw[name]
		if !ok || value == nil {
			if p.nulls == nil {
				p.nulls = make(map[string]bool)
			}
			p.nulls[name] = true
			continue
		}
		p.setValue(name, *value)
	}
	return nil
}

// MarshalJSON encodes the ten fields in document order, writing null for
// fields that were null when decoded.
func (p Product) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range FieldNames {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if p.nulls[name] {
			buf.WriteString("null")
			continue
		}
		value, _ := p.Field(name)
		if err := writeString(&buf, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeString appends s as a JSON string without HTML escaping
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func (p *Product) setValue(name, value string) bool {
	switch name {
	case FieldName:
		p.Name = value
	case FieldDescription:
		p.Description = value
	case FieldCalories:
		p.Calories = value
	case FieldFats:
		p.Fats = value
	case FieldCarbs:
		p.Carbs = value
	case FieldProteins:
		p.Proteins = value
	case FieldUnsaturated:
		p.Unsaturated = value
	case FieldSugar:
		p.Sugar = value
	case FieldSalt:
		p.Salt = value
	case FieldPortion:
		p.Portion = value
	default:
		return false
	}
	return true
}
