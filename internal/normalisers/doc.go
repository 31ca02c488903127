// Package normalisers provides implementations of the Normaliser interface.
// A normaliser turns a raw source file into the title and preview text
// stored in the local index.
package normalisers
