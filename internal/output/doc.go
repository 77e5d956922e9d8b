// Package output provides deterministic JSON encoding for solarbom responses.
//
// Identical calculations must produce byte-identical JSON so quotes can be
// diffed and cached by content. DeterministicEncode guarantees this by:
//
//  1. Stable key ordering: object keys are sorted alphabetically
//  2. Float formatting: rounded to at most 6 decimal places
//  3. Null handling: nil fields, empty slices and empty maps are omitted
//  4. Custom marshalers: values implementing json.Marshaler or
//     encoding.TextMarshaler keep their own encoding (money amounts, cell type
//     counts, component names)
package output
