// Package value provides the closed set of store-native value kinds.
//
// Every persisted property is one of Null, Boolean, Integer, Double, String,
// Timestamp, Array or Entity. Value is sealed: only types in this package
// implement it, so a type switch over a Value can be checked for
// completeness by reading this package alone.
//
// Key design constraints:
//   - Null is an explicit type, never a nil interface, once a value leaves a mapper
//   - Timestamp carries an absolute instant only; the store has no offset concept
//   - The JSON form matches the document store's REST encoding (single-key objects)
//
// This package imports nothing internal.
package value
