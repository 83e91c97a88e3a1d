// Package loader discovers delimiter-packed bundle files on a filesystem,
// splits them into variants, selects the canonical variant, and turns it
// into a renderable document.
package loader
