package model

// LabelKey returns the catalog key for the label shown next to slot when k is
// active, e.g. "fields.cylinder-area.a". Slots unused by k return "".
func LabelKey(k FormulaKind, slot Slot) string {
	if !k.Valid() || !kindSpecs[k].Requires(slot) {
		return ""
	}
	return "fields." + kindSpecs[k].ID + "." + slot.String()
}

// DefaultLabel returns the built-in English label for slot under k. It is used
// when no translator is configured or a translation is missing.
func DefaultLabel(k FormulaKind, slot Slot) string {
	if !k.Valid() {
		return ""
	}
	if label, ok := kindSpecs[k].Labels[slot]; ok {
		return label
	}
	return ""
}

// DefaultTitle returns the built-in English title of k.
func DefaultTitle(k FormulaKind) string {
	if !k.Valid() {
		return ""
	}
	return kindSpecs[k].Title
}

