// Package fixture reads paragraph descriptions used to drive and check
// layouts.
//
// A fixture file holds paragraph blocks:
//
//	# comment
//	paragraph soft "super\u00ADfluous" {
//	    width 55 80
//	    wrap word
//	    align justify
//	    direction rtl
//	    flags trailing-spaces show-separators force-justify
//	    tabstop 40
//	    tab 100 delimiter "."
//	    level 3 4 1
//	    object 5 width 50 ascent 20 descent 5
//	    format 0 5 underline
//	    expect 0 6 0
//	    position 3 x 30
//	}
//
// Widths apply to successive lines, the last one repeating. Without a
// width lines are unbounded. Expectations are checked with Verify, in
// line order.
package fixture
