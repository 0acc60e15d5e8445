package digest

import "math/rand/v2"

var insults = []string{
	"muppet",
	"melt",
	"weapon",
	"plank",
	"numpty",
	"donkey",
	"wally",
	"pillock",
	"bellend",
	"plonker",
	"nugget",
	"walnut",
}

// RandomInsult is the default insult source.
func RandomInsult() string {
	return insults[rand.IntN(len(insults))]
}

// Insults returns a copy of the insult list.
func Insults() []string {
	return append([]string(nil), insults...)
}
