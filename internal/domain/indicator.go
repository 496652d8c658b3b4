package domain

// Indicator is the externally visible status triple the host framework
// renders next to the node.
type Indicator struct {
	Fill  string `json:"fill"`
	Shape string `json:"shape"`
	Text  string `json:"text"`
}

var (
	IndicatorNotConnected    = Indicator{Fill: "green", Shape: "dot", Text: "not connected"}
	IndicatorConnected       = Indicator{Fill: "green", Shape: "dot", Text: "connected"}
	IndicatorHostUnreachable = Indicator{Fill: "red", Shape: "dot", Text: "Host unreachable"}
	IndicatorError           = Indicator{Fill: "red", Shape: "dot", Text: "error"}
	IndicatorIdle            = Indicator{Fill: "green", Shape: "dot", Text: "idle"}
	IndicatorJoined          = Indicator{Fill: "green", Shape: "dot", Text: "joined"}
	IndicatorLaunched        = Indicator{Fill: "green", Shape: "dot", Text: "launched"}
	IndicatorSending         = Indicator{Fill: "yellow", Shape: "dot", Text: "sending"}
	IndicatorCantConnect     = Indicator{Fill: "red", Shape: "dot", Text: "cant connect"}
)
