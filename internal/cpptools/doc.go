// Package cpptools implements the text-level C++ helpers behind the code playground:
// a regex formatter, a line linter, a complexity estimator and a syntax-checking
// compile simulation.
//
// None of these understand C++ semantics. The formatter and linter are cosmetic
// pattern passes and will happily rewrite text inside strings and comments.
package cpptools
