// meta/meta.go
package meta

// GO_ROUTINES defines the number of games played concurrently in a match.
const GO_ROUTINES = 8

// SIMULATIONS defines the number of simulations per MCTS search.
const SIMULATIONS = 200

// C_PUCT weights the prior term of the PUCT score.
const C_PUCT = 1.0

// DEPTH defines the negamax search depth.
const DEPTH = 3

// MAX_MOVES bounds the number of plies in one game.
const MAX_MOVES = 200

// GAMES defines the number of games per match-up.
const GAMES = 20

// TEMPERATURE of zero selects the most visited action.
const TEMPERATURE = 0.0
