// Package render produces all user-facing text: the localized message
// catalog for operation outcomes and the bounded listing block that
// formats the full queue for the operator.
package render
