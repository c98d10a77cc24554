// Package vndb provides the minimal VNDB kana API client used to identify
// visual novel folders.
//
// It exposes visual novel search, release lookup by VN identifier, and tag
// search. Responses are decoded into loose wire structs and converted at the
// package boundary into strict domain types, so missing or null catalog fields
// surface as absent values rather than guessed defaults. Options allow tests
// to supply custom HTTP clients or point the client at an httptest server.
package vndb
