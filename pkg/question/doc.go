// Package question holds the schema records that drive form construction and
// the answer records produced on submission.
//
// A schema is an ordered list of Descriptor values fetched from a remote (or
// local) Source. Each descriptor describes either a single control (text,
// email, password, ...) or a radio group with its options. Answers are the
// flat {name, value} pairs posted to the submission endpoint.
package question
