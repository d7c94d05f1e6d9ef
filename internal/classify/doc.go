// Package classify assigns a construct kind to each member of a type
// declaration using static shape rules.
//
// Classification is a pure function: it looks only at the member and
// the declaring type's simple name, never at other types. Ambiguous
// shapes fall back to plain Method - a name that merely resembles an
// operator is never guessed to be one.
package classify
