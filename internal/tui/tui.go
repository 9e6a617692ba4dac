// Package tui is the interactive terminal client: a board view, a rolling
// ship's log, and a free-text order line fed through the fuzzy parser.
package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/broadside-games/armada/internal/game"
	"github.com/broadside-games/armada/internal/parser"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateAITurn
	stateGameOver
)

type model struct {
	state   sessionState
	game    game.GameState
	parser  *parser.Parser
	rng     *rand.Rand
	aiDelay time.Duration

	input    textinput.Model
	viewport viewport.Model
	log      string
	width    int
	height   int

	lastShip  string
	turnStart time.Time
	outcome   game.Outcome
}

var (
	orderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#275D6E")).
			Bold(true).
			PaddingLeft(1)

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	waterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#335577"))
	islandStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A9A3B"))
	portStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4A017"))
	treasureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	hazardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B04040"))

	playerStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#55AAFF")).Bold(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#55FF99")).Bold(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#DD88FF")).Bold(true),
	}
)

func NewModel(state game.GameState, aiDelay time.Duration) model {
	ti := textinput.New()
	ti.Placeholder = "Give an order, or 'help'..."
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 48

	return model{
		state:     statePlaying,
		game:      state,
		parser:    parser.New(),
		rng:       newSessionRNG(state.Seed),
		aiDelay:   aiDelay,
		input:     ti,
		turnStart: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.maybeAICmd())
}

type aiStepMsg struct{}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.state != statePlaying {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.Reset()
			return m.handleOrder(line)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * 0.55)
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, msg.Height-6)
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.log)

	case aiStepMsg:
		return m.runAIStep()
	}

	if m.state == statePlaying {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleOrder parses one line of input and executes the resulting intent.
func (m model) handleOrder(line string) (tea.Model, tea.Cmd) {
	m.appendLog(orderStyle.Render("> " + line))

	current, ok := m.game.CurrentPlayer()
	if !ok || current.AI {
		m.appendLog(logStyle.Render("The enemy fleets are still moving. Wait for your turn."))
		return m, nil
	}

	intent := m.parser.Parse(m.parseContext(current), line)
	if intent.Clarify != nil {
		m.appendLog(logStyle.Render(intent.Clarify.Prompt))
		for _, option := range intent.Clarify.Options {
			m.appendLog(helpStyle.Render("  - " + parser.IntentToCommandString(option)))
		}
		return m, nil
	}

	switch intent.Verb {
	case "quit":
		return m, tea.Quit
	case "help":
		m.appendLog(helpText())
		return m, nil
	case "map":
		m.appendLog(m.renderBoard())
		return m, nil
	case "status":
		m.appendLog(m.renderStatus(current))
		return m, nil
	case "log":
		m.appendLog(m.renderEvents())
		return m, nil
	case "end":
		return m.endTurn(current.ID)
	}

	action, err := m.intentToAction(current, intent)
	if err != nil {
		m.appendLog(logStyle.Render(err.Error()))
		return m, nil
	}

	result := game.Apply(m.game, game.ActionRequest{
		GameID:    m.game.ID,
		PlayerID:  current.ID,
		Timestamp: time.Now(),
		Action:    action,
	}, m.rng)
	m.appendLog(logStyle.Render(result.Message))
	if !result.Success {
		return m, nil
	}

	m.game = game.RecordDecisionTime(result.State, current.ID, time.Since(m.turnStart))
	m.turnStart = time.Now()
	return m.checkOutcome()
}

func (m model) endTurn(playerID string) (tea.Model, tea.Cmd) {
	m.game = game.RecordDecisionTime(m.game, playerID, time.Since(m.turnStart))
	m.game = game.Advance(m.game, m.rng)
	m.turnStart = time.Now()
	m.appendLog(helpStyle.Render(fmt.Sprintf("— turn passes, weather: %s —", m.game.Weather.Type)))
	return m.checkOutcome()
}

func (m model) checkOutcome() (tea.Model, tea.Cmd) {
	if outcome := game.EvaluateOutcome(m.game); outcome.Over {
		m.game = game.Conclude(m.game, outcome)
		m.outcome = outcome
		m.state = stateGameOver
		m.appendLog(titleStyle.Render(m.outcomeText()))
		return m, nil
	}
	return m, m.maybeAICmd()
}

// maybeAICmd schedules an AI step when the turn belongs to a machine player.
func (m *model) maybeAICmd() tea.Cmd {
	current, ok := m.game.CurrentPlayer()
	if !ok || !current.AI || m.game.Status != game.StatusActive {
		m.state = statePlaying
		return nil
	}
	m.state = stateAITurn
	return tea.Tick(m.aiDelay, func(time.Time) tea.Msg { return aiStepMsg{} })
}

func (m model) runAIStep() (tea.Model, tea.Cmd) {
	current, ok := m.game.CurrentPlayer()
	if !ok || !current.AI {
		m.state = statePlaying
		return m, nil
	}

	decision := game.Decide(m.game, current.ID, m.rng)
	if decision.Pass {
		m.appendLog(helpStyle.Render(fmt.Sprintf("%s holds position.", current.Name)))
	} else {
		result := game.Apply(m.game, game.ActionRequest{
			GameID:    m.game.ID,
			PlayerID:  current.ID,
			Timestamp: time.Now(),
			Action:    decision.Action,
		}, m.rng)
		if result.Success {
			m.game = result.State
		}
		m.appendLog(logStyle.Render(fmt.Sprintf("%s: %s", current.Name, result.Message)))
	}

	m.game = game.Advance(m.game, m.rng)
	return m.checkOutcome()
}

// parseContext exposes the rosters to the parser under the same labels the
// board and status views print.
func (m model) parseContext(current *game.Player) parser.ParseContext {
	ctx := parser.ParseContext{LastShip: m.lastShip}
	for _, ship := range current.Ships {
		if ship.Alive() {
			ctx.Ships = append(ctx.Ships, shipDisplayName(*current, ship))
		}
	}
	for _, p := range m.game.Players {
		if p.ID == current.ID {
			continue
		}
		for _, ship := range p.Ships {
			if ship.Alive() {
				ctx.EnemyShips = append(ctx.EnemyShips, shipDisplayName(p, ship))
			}
		}
	}
	for _, t := range game.AllShipTypes() {
		ctx.ShipTypes = append(ctx.ShipTypes, string(t))
	}
	return ctx
}

func (m *model) intentToAction(current *game.Player, intent parser.Intent) (game.Action, error) {
	switch intent.Verb {
	case "move":
		ship, err := m.pickShip(current, intent.Args)
		if err != nil {
			return nil, err
		}
		if intent.Coord == nil {
			return nil, fmt.Errorf("move needs a destination, e.g. move %s 3,4", shipDisplayName(*current, *ship))
		}
		m.lastShip = shipDisplayName(*current, *ship)
		return game.MoveShip{ShipID: ship.ID, To: game.Coordinate{X: intent.Coord.X, Y: intent.Coord.Y}}, nil

	case "attack":
		if len(intent.Args) == 0 {
			return nil, fmt.Errorf("attack needs a target")
		}
		target, err := m.findEnemyByName(current.ID, intent.Args[0])
		if err != nil {
			return nil, err
		}
		attacker, err := m.nearestShooter(current, target)
		if err != nil {
			return nil, err
		}
		m.lastShip = shipDisplayName(*current, *attacker)
		return game.Attack{ShipID: attacker.ID, TargetShipID: target.ID}, nil

	case "claim":
		ship, err := m.pickShip(current, intent.Args)
		if err != nil {
			return nil, err
		}
		m.lastShip = shipDisplayName(*current, *ship)
		return game.ClaimTerritory{ShipID: ship.ID, At: ship.Pos}, nil

	case "collect":
		ship, err := m.pickShip(current, intent.Args)
		if err != nil {
			return nil, err
		}
		m.lastShip = shipDisplayName(*current, *ship)
		return game.CollectResources{ShipID: ship.ID}, nil

	case "build":
		if len(intent.Args) == 0 {
			return nil, fmt.Errorf("build needs a hull type: scout, frigate, galleon, or flagship")
		}
		hull := game.ShipType(intent.Args[0])
		if !game.ValidShipType(hull) {
			return nil, fmt.Errorf("unknown hull type %q", intent.Args[0])
		}
		if intent.Coord == nil {
			return nil, fmt.Errorf("build needs a launch site, e.g. build %s at 3,4", hull)
		}
		return game.BuildShip{Type: hull, At: game.Coordinate{X: intent.Coord.X, Y: intent.Coord.Y}}, nil
	}
	return nil, fmt.Errorf("I don't know how to %s", intent.Verb)
}

// pickShip resolves a named ship, falling back to the fleet's only living
// hull when no name was given.
func (m model) pickShip(current *game.Player, args []string) (*game.Ship, error) {
	if len(args) > 0 {
		name := strings.Join(args, " ")
		for i := range current.Ships {
			ship := &current.Ships[i]
			if ship.Alive() && strings.EqualFold(shipDisplayName(*current, *ship), name) {
				return ship, nil
			}
		}
		return nil, fmt.Errorf("no ship called %q in your fleet", name)
	}

	var only *game.Ship
	for i := range current.Ships {
		if current.Ships[i].Alive() {
			if only != nil {
				return nil, fmt.Errorf("which ship? You have %d afloat", current.LivingShips())
			}
			only = &current.Ships[i]
		}
	}
	if only == nil {
		return nil, fmt.Errorf("you have no ships left")
	}
	return only, nil
}

func (m model) findEnemyByName(ownID, name string) (*game.Ship, error) {
	for i := range m.game.Players {
		p := &m.game.Players[i]
		if p.ID == ownID {
			continue
		}
		for j := range p.Ships {
			ship := &p.Ships[j]
			if ship.Alive() && strings.EqualFold(shipDisplayName(*p, *ship), name) {
				return ship, nil
			}
		}
	}
	return nil, fmt.Errorf("no enemy ship called %q in sight", name)
}

// nearestShooter picks the closest friendly ship with the target in range.
func (m model) nearestShooter(current *game.Player, target *game.Ship) (*game.Ship, error) {
	var best *game.Ship
	bestDist := 0.0
	for i := range current.Ships {
		ship := &current.Ships[i]
		if !ship.Alive() {
			continue
		}
		dist := ship.Pos.DistanceTo(target.Pos)
		if best == nil || dist < bestDist {
			best, bestDist = ship, dist
		}
	}
	if best == nil {
		return nil, fmt.Errorf("you have no ships left")
	}
	return best, nil
}

// shipDisplayName labels ships by hull type with an ordinal when a fleet
// carries duplicates: "scout", "frigate 2".
func shipDisplayName(owner game.Player, ship game.Ship) string {
	ordinal := 0
	nth := 0
	for _, s := range owner.Ships {
		if s.Type != ship.Type {
			continue
		}
		ordinal++
		if s.ID == ship.ID {
			nth = ordinal
		}
	}
	if ordinal <= 1 || nth == 1 {
		return string(ship.Type)
	}
	return fmt.Sprintf("%s %d", ship.Type, nth)
}

func (m model) View() string {
	board := m.renderBoard()
	status := ""
	if current, ok := m.game.CurrentPlayer(); ok {
		status = m.renderStatus(current)
	}
	side := panelStyle.Render(status)

	main := lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", side)

	var bottom string
	switch m.state {
	case stateGameOver:
		bottom = titleStyle.Render(m.outcomeText()) + "\n" + helpStyle.Render("Press Esc to quit.")
	case stateAITurn:
		bottom = helpStyle.Render("Enemy fleets are moving...")
	default:
		bottom = m.input.View() + "\n" + helpStyle.Render("Orders: move, attack, claim, collect, build, status, map, end. 'help' for more.")
	}

	logView := m.log
	if m.viewport.Width > 0 {
		logView = m.viewport.View()
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, main, "", logView, "", bottom) + "\n"
}

func (m *model) appendLog(entry string) {
	if m.log != "" {
		m.log += "\n"
	}
	m.log += entry
	if m.viewport.Width > 0 {
		m.viewport.SetContent(m.log)
		m.viewport.GotoBottom()
	}
}

func (m model) outcomeText() string {
	switch {
	case m.outcome.Draw:
		return fmt.Sprintf("The match ends in a draw: %s.", m.outcome.Reason)
	case m.outcome.WinnerID != "":
		name := m.outcome.WinnerID
		for _, p := range m.game.Players {
			if p.ID == m.outcome.WinnerID {
				name = p.Name
			}
		}
		return fmt.Sprintf("%s wins: %s.", name, m.outcome.Reason)
	default:
		return "The match is over."
	}
}

func terrainGlyph(t game.TerrainType) string {
	switch t {
	case game.TerrainIsland:
		return islandStyle.Render("▲")
	case game.TerrainPort:
		return portStyle.Render("⚓")
	case game.TerrainTreasure:
		return treasureStyle.Render("$")
	case game.TerrainStorm:
		return hazardStyle.Render("≈")
	case game.TerrainReef:
		return hazardStyle.Render("^")
	case game.TerrainWhirlpool:
		return hazardStyle.Render("@")
	default:
		return waterStyle.Render("·")
	}
}

func (m model) renderBoard() string {
	size := m.game.Grid.Size

	occupied := make(map[game.Coordinate]int)
	for i, p := range m.game.Players {
		for _, ship := range p.Ships {
			if ship.Alive() {
				occupied[ship.Pos] = i
			}
		}
	}

	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < size; x++ {
		b.WriteString(fmt.Sprintf("%2d", x%100))
	}
	b.WriteString("\n")
	for y := 0; y < size; y++ {
		b.WriteString(fmt.Sprintf("%2d ", y))
		for x := 0; x < size; x++ {
			coord := game.Coordinate{X: x, Y: y}
			b.WriteString(" ")
			if idx, ok := occupied[coord]; ok {
				style := playerStyles[idx%len(playerStyles)]
				b.WriteString(style.Render(string(rune('A' + idx))))
				continue
			}
			cell, _ := m.game.Grid.At(coord)
			if cell.Owner != "" {
				if idx := m.playerIndex(cell.Owner); idx >= 0 {
					b.WriteString(playerStyles[idx%len(playerStyles)].Render("•"))
					continue
				}
			}
			b.WriteString(terrainGlyph(cell.Type))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) playerIndex(id string) int {
	for i := range m.game.Players {
		if m.game.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func (m model) renderStatus(current *game.Player) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TURN") + "\n")
	b.WriteString(fmt.Sprintf("%d of %d, %s\n", m.game.TurnNumber, m.game.MaxTurns, m.game.Weather.Type))
	b.WriteString(fmt.Sprintf("Acting: %s\n\n", current.Name))

	b.WriteString(titleStyle.Render("RESOURCES") + "\n")
	r := current.Resources
	b.WriteString(fmt.Sprintf("gold %d  crew %d  cannons %d\nsupplies %d  wood %d  rum %d\n\n", r.Gold, r.Crew, r.Cannons, r.Supplies, r.Wood, r.Rum))

	b.WriteString(titleStyle.Render("FLEET") + "\n")
	for _, ship := range current.Ships {
		if !ship.Alive() {
			continue
		}
		b.WriteString(fmt.Sprintf("%s (%d,%d) %d/%d hp\n", shipDisplayName(*current, ship), ship.Pos.X, ship.Pos.Y, ship.Health, ship.MaxHealth))
	}

	b.WriteString("\n" + titleStyle.Render("STANDING") + "\n")
	for i, p := range m.game.Players {
		marker := string(rune('A' + i))
		b.WriteString(fmt.Sprintf("%s %s: %d pts, %d cells, %d ships\n", marker, p.Name, p.Score, len(p.Territory), p.LivingShips()))
	}
	return b.String()
}

func (m model) renderEvents() string {
	if len(m.game.Events) == 0 {
		return "The log is empty."
	}
	start := len(m.game.Events) - 12
	if start < 0 {
		start = 0
	}
	return strings.Join(m.game.Events[start:], "\n")
}

func helpText() string {
	return strings.Join([]string{
		"Orders:",
		"  move <ship> <x,y>     sail a ship (e.g. move scout 3,4)",
		"  attack <enemy ship>   fire on an enemy in range",
		"  claim [ship]          claim the territory under a ship",
		"  collect [ship]        collect resources from owned territory",
		"  build <hull> <x,y>    launch a new ship beside your port",
		"  status / map / log    fleet report, board, recent events",
		"  end                   finish your turn",
		"  quit                  leave the match",
	}, "\n")
}

func newSessionRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9E3779B97F4A7C15))
}

// Run starts the interactive client and blocks until the match ends or the
// player quits.
func Run(state game.GameState, aiDelay time.Duration) error {
	p := tea.NewProgram(NewModel(state, aiDelay), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
