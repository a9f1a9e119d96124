// Package constraint evaluates input values the way HTML constraint validation
// does: `required`, `pattern`, and the type specific checks for email, url,
// and number inputs. It is the single source of truth for field validity;
// callers never re-implement these rules.
//
// Patterns use Go regexp syntax, anchored as ^(?:pattern)$. A pattern that
// fails to compile is ignored, matching how browsers treat invalid patterns.
package constraint
