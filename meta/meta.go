// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines used by a threshold sweep.
const GO_ROUTINES = 8

// THRESHOLD defines the default number of stones that ends the game.
const THRESHOLD = 444

// MAX_SIZE defines the default upper bound of the analyzed range.
const MAX_SIZE = 400

// HORIZON_MARGIN defines how far past the analyzed sizes the classifier
// expands before giving up on a size as Unresolved.
const HORIZON_MARGIN = 1024

// OPERATIONS defines the default moves available to both players.
var OPERATIONS = []string{"+2", "+5", "*3"}
