// Package textutil holds small numeric and text helpers used when laying out
// status codes in fixed-width text tables.
package textutil
