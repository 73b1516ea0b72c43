// Package policy supplies the reference data the admission stages consult:
// eligibility criteria, program catalog (capacity and fees), loan policy and
// letter templates.
//
// The Source interface deliberately returns values, not errors: absent or
// malformed reference data is never a workflow failure. Every accessor falls
// back to documented defaults, so a stage can always make a decision.
//
// Three implementations are provided:
//
//   - Static: in-memory values seeded with the defaults, overridable via
//     options and setters
//   - Scraper: pulls raw text or JSON from an injected knowledge-base Lookup
//     capability and extracts values per field, falling back to a Static
//     source for anything it cannot parse
//   - LoadFile: reads a YAML policy document into a Static source
package policy
