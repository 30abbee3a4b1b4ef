// Package store implements the marker × individual genotype matrix.
//
// Every row is written exactly once by AddRow. While a row loads, a
// role.Assigner maps each raw allele-pair code to AA, Aa or aa in order of
// first occurrence; the resulting role.Header is kept next to the row.
//
// Three in-memory encodings share one contract:
//
//   - BitPlane: two one-bit planes α and β per row, word aligned. Scans read
//     the planes directly.
//   - Packed2: one 2-bit role per cell. Planes are rebuilt per scan through a
//     byte table.
//   - Packed4: the raw 4-bit allele code per cell. Planes are rebuilt through
//     the row header lookup.
//
// A cell decodes from (α, β) as (0,0) missing, (1,0) AA, (0,1) Aa, (1,1) aa.
package store
