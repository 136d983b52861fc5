package model

// MissingRequired reports the first required field absent from a decoded
// document, or "" when the document carries everything mandatory.
//
// Only contact and contact.name are mandatory. A top-level value that is not
// an object has no contact at all.
func MissingRequired(doc interface{}) string {
	m, ok := doc.(map[string]interface{})
	if !ok {
		return "contact"
	}

	contactRaw, hasContact := m["contact"]
	if !hasContact || contactRaw == nil {
		return "contact"
	}
	contact, ok := contactRaw.(map[string]interface{})
	if !ok {
		return "contact"
	}

	nameRaw, hasName := contact["name"]
	if !hasName || nameRaw == nil {
		return "contact.name"
	}
	if name, ok := nameRaw.(string); ok && name == "" {
		return "contact.name"
	}
	return ""
}
