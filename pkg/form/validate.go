package form

// Validate reflects the input's constraint validity in its presentation: an
// invalid input shows its error slot and carries aria-invalid="true", a valid
// one hides the slot and drops the attribute. slot may be nil.
func Validate(in *Input, slot *ErrorSlot) {
	if in == nil {
		return
	}
	if !in.Validity().Valid() {
		if slot != nil {
			slot.Show()
		}
		in.SetAttr(AttrAriaInvalid, "true")
		return
	}
	if slot != nil {
		slot.Hide()
	}
	in.RemoveAttr(AttrAriaInvalid)
}

// ValidateAll runs Validate over every input with its associated slot and
// reports whether all of them are valid.
func ValidateAll(f *Form) bool {
	valid := true
	for _, in := range f.Inputs() {
		Validate(in, f.ErrorSlotFor(in))
		if !in.Validity().Valid() {
			valid = false
		}
	}
	return valid
}
