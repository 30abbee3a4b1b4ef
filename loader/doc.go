// Package loader reads genotype matrices and phenotype files into a Study.
//
// # Genotype matrix
//
// A whitespace-separated text table. The first non-comment line is the
// header, a label followed by one identifier per individual:
//
//	# comment lines start with '#'
//	marker  i1  i2  i3
//	rs1     AA  AG  00
//	rs2     CT  CC  TT
//
// Every following line holds a marker identifier and one call per
// individual. Calls are read by the study's allele table.
//
// # Phenotypes
//
// One "<individual> <status>" pair per line, PLINK coded: 2 is a case,
// 1 a control, and 0, -9 or NA is missing.
//
// # Sources
//
// Files are read from a blobstore.Store and decompressed by extension
// (.gz, .zst, .lz4). A matrix is read twice, once for identifiers and once
// for calls, so wrap remote stores in a blobstore.CachingStore.
//
// Rows that fail to load are collected as *LineError values and loading
// continues, up to a configurable error budget.
package loader
