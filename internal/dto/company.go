package dto

import (
	"encoding/json"
	"fmt"
)

// Company is a raw company record as returned by the registry API.
// The provider payload is kept untouched so it can be stored in extra_info.
type Company map[string]interface{}

// CNPJ returns the registry identifier of the company
func (c Company) CNPJ() string {
	return c.str("cnpj")
}

// RazaoSocial returns the legal name
func (c Company) RazaoSocial() string {
	return c.str("razao_social")
}

// NomeFantasia returns the trade name, which is often empty
func (c Company) NomeFantasia() string {
	return c.str("nome_fantasia")
}

// FirstEmail returns the raw first entry of contato_email.
// Entries are either plain strings or objects with an "email" key.
func (c Company) FirstEmail() string {
	first, ok := c.first("contato_email")
	if !ok {
		return ""
	}
	switch v := first.(type) {
	case string:
		return v
	case map[string]interface{}:
		if email, ok := v["email"].(string); ok {
			return email
		}
	}
	return ""
}

// FirstPhone returns the raw first entry of contato_telefonico.
// Entries are either plain strings or objects carrying "completo" or "ddd"+"numero".
func (c Company) FirstPhone() string {
	first, ok := c.first("contato_telefonico")
	if !ok {
		return ""
	}
	switch v := first.(type) {
	case string:
		return v
	case map[string]interface{}:
		if completo := scalar(v["completo"]); completo != "" {
			return completo
		}
		return scalar(v["ddd"]) + scalar(v["numero"])
	}
	return ""
}

// DisplayPhone is FirstPhone for storage: an object entry with no usable
// fields is kept as its JSON encoding so the operator can still read it.
func (c Company) DisplayPhone() string {
	if phone := c.FirstPhone(); phone != "" {
		return phone
	}
	first, ok := c.first("contato_telefonico")
	if !ok {
		return ""
	}
	if obj, isObj := first.(map[string]interface{}); isObj && len(obj) > 0 {
		raw, err := json.Marshal(obj)
		if err == nil {
			return string(raw)
		}
	}
	return ""
}

// Merge returns a new record where keys from details override the receiver
func (c Company) Merge(details map[string]interface{}) Company {
	merged := make(Company, len(c)+len(details))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return merged
}

// UF returns the state code of the company address
func (c Company) UF() string {
	if addr, ok := c["endereco"].(map[string]interface{}); ok {
		if uf := scalar(addr["uf"]); uf != "" {
			return uf
		}
	}
	return c.str("uf")
}

// City returns the municipality of the company address
func (c Company) City() string {
	if addr, ok := c["endereco"].(map[string]interface{}); ok {
		if city := scalar(addr["municipio"]); city != "" {
			return city
		}
	}
	return c.str("municipio")
}

func (c Company) str(key string) string {
	return scalar(c[key])
}

func (c Company) first(key string) (interface{}, bool) {
	list, ok := c[key].([]interface{})
	if !ok || len(list) == 0 {
		return nil, false
	}
	return list[0], true
}

// scalar renders strings and JSON numbers; anything else is empty
func scalar(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	case json.Number:
		return t.String()
	}
	return ""
}
