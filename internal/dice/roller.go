package dice

import (
	"fmt"
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

// Roller produces a single uniform die face in [1, sides]
type Roller interface {
	Roll(sides int) int
}

// DefaultRoller draws faces through the rpg-toolkit dice package
var DefaultRoller Roller = toolkitRoller{}

type toolkitRoller struct{}

func (toolkitRoller) Roll(sides int) int {
	roll, err := toolkitdice.NewRoll(1, sides)
	if err != nil {
		// only reachable with sides < 1, which no Die allows
		panic(fmt.Sprintf("dice: cannot roll d%d: %v", sides, err))
	}
	return roll.GetValue()
}

// ScriptedRoller replays a fixed sequence of faces, starting over when it
// runs out. It ignores the requested die size.
type ScriptedRoller struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewScriptedRoller creates a roller that returns values in order
func NewScriptedRoller(values ...int) *ScriptedRoller {
	if len(values) == 0 {
		values = []int{1}
	}
	return &ScriptedRoller{values: values}
}

// Roll returns the next scripted face
func (r *ScriptedRoller) Roll(int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}
