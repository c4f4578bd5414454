// Package naming provides the case conventions used to turn contract
// parameter names into wire keys.
//
// Parameter names are written in lowerCamel, matching Go identifier style.
// A [Convention] rewrites such a name into one of the supported target
// forms: lowerCamel (identity), UpperCamel, lower_underscore,
// UPPER_UNDERSCORE and lower-hyphen.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
