// Package tui provides the bubbletea candidate picker used by
// `vnrename rename --tui`.
package tui
