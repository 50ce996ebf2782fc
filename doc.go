// Package wiremodel provides dual-view wire models for REST
// request/response bodies: objects that are simultaneously
// strongly-typed, attribute-addressable values and raw, wire-accurate
// ordered JSON mappings over one backing store.
//
// Types are declared once with the field package and defined with
// model.Define; instances are built in keyword mode (model.Values) or
// from wire-shaped mappings, and serialized with the encode package.
// This package adds the document-level helpers: Diff and the patch
// application entry points.
package wiremodel
