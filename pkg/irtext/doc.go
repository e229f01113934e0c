// Package irtext parses captured pulse trains from their text forms.
//
// Three forms are accepted:
//
//	hex     "5601AA00 17001500 ..."   8 hex digits per pulse: mark then
//	                                  space, each a little-endian uint16
//	                                  count of 38 kHz carrier cycles
//	json    "[9000, 4473, 605, 552]"  alternating mark and space in
//	                                  microseconds
//	pigpio  {"name": [9000, 4473]}    a single named JSON array
//
// Whitespace is allowed anywhere in the hex form and digits may be either
// case. The array forms accept a trailing comma. An array with an odd
// number of values gets a final space of TrailingSpace.
package irtext
