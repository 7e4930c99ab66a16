// Package train holds spike trains and the sorting collaborator consumed by
// the correlogram engine.
//
// A [Train] is a non-decreasing sequence of sample indices for one unit in
// one recording segment. A [Sorting] groups the trains of several units
// across one or more segments together with the sampling frequency.
//
// [MemorySorting] is an in-memory Sorting built from explicit trains with
// [NewSorting] or [FromUnits], generated synthetically with [Generate], or
// parsed from a plain-text listing with [ReadText].
package train
