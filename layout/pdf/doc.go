// Package pdf implements the layout.Source interface on top of the
// ledongthuc/pdf reader.
//
// The reader exposes positioned text fragments with font name and size per
// fragment. This package reconstructs reading order by grouping fragments
// into rows by Y coordinate (with a small tolerance), ordering rows top to
// bottom and fragments left to right, and splitting rows into blocks at
// large vertical gaps. Bold and italic are inferred from font-name
// substrings, the convention PDF font programs follow.
package pdf
