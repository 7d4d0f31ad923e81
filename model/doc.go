// Package model defines stable boundary types for the HTTP API and CLI.
//
// Wire identity (packed words, record bytes, rendered SVG) is unaffected by
// any projection. These structs are the only types intended for direct JSON
// serialization by consumers.
package model
