// Package scan turns genotype bit-planes into distributions and 3×3
// contingency tables.
//
// Every kernel works a word at a time. For planes α and β the three roles of
// one word are
//
//	AA = α &^ β
//	Aa = β &^ α
//	aa = α &  β
//
// and each cell of a table is the population count of the AND of one role
// word of each marker.
//
// Case/control scans go through a View pinned to one mask.Snapshot. When
// both markers have no missing call in a group, only the four cells
// (AA,AA), (AA,Aa), (Aa,AA), (Aa,Aa) are counted and the other five follow
// from the markers' marginals.
package scan
