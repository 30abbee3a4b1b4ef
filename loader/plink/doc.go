// Package plink loads PLINK 1 binary filesets (.bed, .bim, .fam).
//
// Only SNP-major .bed files are supported. Each variant's 2-bit codes are
// decoded to allele-pair calls built from the .bim alleles, so the study's
// allele table and role assignment apply unchanged. The .fam affection
// column provides the case/control partition.
package plink
