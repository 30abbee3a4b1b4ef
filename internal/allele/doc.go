// Package allele maps two-character allele-pair calls onto small integer codes.
//
// A Table is built explicitly from an alphabet (default "ACGT") and a set of
// sentinel characters that mark an unknown allele. Codes are unordered: "AC"
// and "CA" resolve to the same code. Code 0 is reserved for an unknown call,
// so every code fits into the 4-bit slots of a row header.
package allele
