package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

// Coord is a parsed board coordinate. The parser does not range-check it;
// the rules engine owns bounds validation.
type Coord struct {
	X int
	Y int
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Coord      *Coord
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext carries the fleet rosters so ship and hull references in free
// text resolve against what is actually on the board.
type ParseContext struct {
	Ships      []string
	EnemyShips []string
	ShipTypes  []string
	LastShip   string
}

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	WantsCoord bool
	HandlerKey string
}
