package lifecycle

import "fmt"

// Phase is a named stage with an integer ordering key. The engine drains
// phases in ascending Order; phases that share an Order run concurrently as
// a single bucket. The engine does not interpret Name; only Order drives
// scheduling.
type Phase struct {
	Name  string
	Order int32
}

// NewPhase creates a Phase with the given name and order. Applications may
// define phases at any integer order in addition to the default phases.
func NewPhase(name string, order int32) Phase {
	return Phase{Name: name, Order: order}
}

// Equal reports whether two phases have the same name and order.
func (p Phase) Equal(other Phase) bool {
	return p.Name == other.Name && p.Order == other.Order
}

func (p Phase) String() string {
	return fmt.Sprintf("%s(%d)", p.Name, p.Order)
}

// Default phases, stable across implementations. Applications are free to
// register handlers on additional phases at any order.
var (
	PreInvocation  = Phase{Name: "PRE_INVOCATION", Order: -1000}
	Invocation     = Phase{Name: "INVOCATION", Order: 0}
	PostInvocation = Phase{Name: "POST_INVOCATION", Order: 1000}
	PrepareCommit  = Phase{Name: "PREPARE_COMMIT", Order: 10000}
	Commit         = Phase{Name: "COMMIT", Order: 20000}
	AfterCommit    = Phase{Name: "AFTER_COMMIT", Order: 30000}
)
