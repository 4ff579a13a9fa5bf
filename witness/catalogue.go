package witness

// CircuitNames enumerates every circuit this builder knows how to
// assemble, namespaced exactly as spec §4.10's table names them.
var CircuitNames = []string{
	"transfer/1x2",
	"consolidate/3x1",
	"swap/swap",
	"swap/add_liquidity",
	"swap/remove_liquidity",
	"market/order_create",
	"market/order_fill",
	"market/order_cancel",
	"perps/open_position",
	"perps/close_position",
	"perps/add_liquidity",
	"perps/remove_liquidity",
}

// Known reports whether name is a recognised circuit. Callers dispatching
// by name (e.g. a generic CLI-less RPC front end) should check this
// before attempting to decode a request, and return ErrCircuitUnknown
// otherwise — the individual Build* functions are statically typed and
// need no such check themselves.
func Known(name string) bool {
	for _, n := range CircuitNames {
		if n == name {
			return true
		}
	}
	return false
}
