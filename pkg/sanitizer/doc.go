// Package sanitizer provides input normalization for user-supplied text.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings rather than errors.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Comparison keys: Lowercased, whitespace-collapsed variants for
//     case-insensitive matching
package sanitizer
