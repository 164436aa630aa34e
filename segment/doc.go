// Package segment provides Unicode-aware segmentation of text into
// grapheme clusters and word runs.
//
// Three units of measurement apply to any string:
//
//  1. Bytes: the storage unit. A single user-perceived character can span
//     1 to 25+ bytes (a ZWJ emoji family is one cluster of 25 bytes).
//  2. Graphemes: what users perceive as characters. A base letter plus a
//     combining accent is one grapheme; so is a flag pair of regional
//     indicators. Column positions in this module count graphemes.
//  3. Cells: terminal display width. ASCII is 1 cell, CJK and emoji are 2.
//
// Segmentation follows Unicode UAX #29 via rivo/uniseg; widths come from
// mattn/go-runewidth. All functions treat their input as one independent
// segmentation unit, so callers should pass whole lines rather than
// arbitrary mid-cluster slices.
package segment
