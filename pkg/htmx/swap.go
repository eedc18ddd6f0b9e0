package htmx

// SwapStrategy is an hx-swap value.
type SwapStrategy string

// Only the strategies the site swaps with are named here.
const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapNone      SwapStrategy = "none"
)
