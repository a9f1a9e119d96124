// Package form models the live form a page owns: an ordered tree of
// containers, fieldsets, labels, inputs, and error slots that ends with a
// sentinel control (the submit button). Build turns question descriptors into
// nodes inserted before the sentinel, Validate toggles the error presentation
// of a single input, and Reset restores every input to its initial state.
//
// A Form has exactly one owner and is not safe for concurrent use.
package form
