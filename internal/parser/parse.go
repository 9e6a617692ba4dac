package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

// Parse maps one line of player input to a game intent. Ship names resolve
// fuzzily against the fleet roster, coordinates are pulled from anywhere in
// the argument list, and ambiguity comes back as a clarify question rather
// than a guess.
func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter an order for your fleet."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	// A weak fuzzy hit loses to a confident free-text reading: "send the
	// scout to 5,5" is a move order, not a misspelt "end".
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.7 {
		if inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised); inferred != nil && inferred.Confidence > cmdMatch.Score {
			return *inferred
		}
	}
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't read that order. Try help, status, map, move, attack, claim, collect, build, end.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Canonical, Kind: commandKind(cmdMatch.Canonical), Verb: cmdMatch.Canonical, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Canonical, Kind: commandKind(alternates[0].Canonical), Verb: alternates[0].Canonical, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	argsTokens = stripFiller(argsTokens)

	def, _ := p.registry.command(intent.Verb)
	if def.WantsCoord {
		argsTokens, intent.Coord = extractCoord(argsTokens)
	}

	resolvedArgs, clarify, argScore := p.resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if intent.Kind == Command && len(intent.Args) < def.MinArgs {
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs a target. %s", def.Canonical, argHint(def.Canonical))}
		intent.Confidence = 0.42
		return intent
	}
	if def.WantsCoord && intent.Coord == nil && intent.Verb != "claim" {
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("Where? Give %s a coordinate like 3,4.", def.Canonical)}
		intent.Confidence = 0.44
		return intent
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I'm not sure about that order. Please rephrase it."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "status", "map", "log":
		return Query
	default:
		return Command
	}
}

func argHint(verb string) string {
	switch verb {
	case "attack":
		return "Name an enemy ship, e.g. attack their frigate."
	case "build":
		return "Name a hull, e.g. build galleon at 3,4."
	default:
		return ""
	}
}

func (p *Parser) resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	for i := 0; i < len(args); i++ {
		token := args[i]
		if isPronoun(token) {
			if strings.TrimSpace(ctx.LastShip) == "" {
				return nil, &ClarifyQuestion{Prompt: "Which ship do you mean?"}, 0.4
			}
			resolved = append(resolved, normaliseInput(ctx.LastShip))
			score -= 0.08
			continue
		}

		pool := resolutionPool(def.Canonical, ctx)
		if len(pool) > 0 {
			joined := token
			// Ship names can run to two or three words.
			if i+1 < len(args) {
				try := token + " " + args[i+1]
				if _, s, _ := bestMatches(try, pool); s > 0.9 {
					joined = try
					i++
				}
			}
			matches, confidence, tie := bestMatches(joined, pool)
			if tie && len(matches) >= 2 {
				options := make([]Intent, 0, 2)
				for idx := 0; idx < 2; idx++ {
					options = append(options, Intent{
						Kind:       commandKind(def.Canonical),
						Verb:       def.Canonical,
						Args:       []string{matches[idx]},
						Confidence: confidence - float64(idx)*0.01,
					})
				}
				return nil, &ClarifyQuestion{
					Prompt:  fmt.Sprintf("Which one should I %s?", def.Canonical),
					Options: options,
				}, 0.52
			}
			if len(matches) == 1 {
				resolved = append(resolved, matches[0])
				score = minScore(score, confidence)
				continue
			}
		}

		resolved = append(resolved, token)
		score -= 0.02
	}
	return resolved, nil, clampScore(score)
}

// resolutionPool picks the vocabulary each verb's arguments resolve against:
// attack aims at enemy hulls, build takes hull types, movement verbs take the
// player's own ships.
func resolutionPool(verb string, ctx ParseContext) []string {
	normalise := func(list []string) []string {
		out := make([]string, 0, len(list))
		for _, v := range list {
			if n := normaliseInput(v); n != "" {
				out = append(out, n)
			}
		}
		return out
	}
	switch verb {
	case "attack":
		return normalise(ctx.EnemyShips)
	case "build":
		return normalise(ctx.ShipTypes)
	case "move", "claim", "collect", "status":
		return normalise(ctx.Ships)
	default:
		return nil
	}
}

func bestMatches(token string, pool []string) ([]string, float64, bool) {
	if len(pool) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	results := make([]scored, 0, len(pool))
	for _, cand := range pool {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		case strings.Contains(cand, token) && len(token) >= 3:
			score = 0.8
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, coord *Coord, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Coord:      coord,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n, "where am i", "show me the map", "whats out there", "what s out there") {
		return makeIntent(Query, "map", nil, nil, 0.88)
	}
	if containsAnyPhrase(n, "how am i doing", "my fleet", "my resources", "what do i have") {
		return makeIntent(Query, "status", nil, nil, 0.88)
	}
	if containsAnyPhrase(n, "im done", "i m done", "thats all", "that s all", "next turn", "finish my turn") {
		return makeIntent(Command, "end", nil, nil, 0.9)
	}

	// "send the scout to 3,4" and friends.
	if containsAnyPhrase(n, "send", "sail", "set course") {
		tokens := stripFiller(tokenise(n))
		rest, coord := extractCoord(tokens)
		if coord != nil && len(rest) > 1 {
			ship := strings.Join(rest[1:], " ")
			if matches, confidence, tie := bestMatches(ship, normalisedPool(ctx.Ships)); !tie && len(matches) == 1 {
				return makeIntent(Command, "move", []string{matches[0]}, coord, minScore(0.84, confidence))
			}
		}
	}

	// "open fire on their galleon".
	if containsAnyPhrase(n, "open fire", "blow", "shoot", "sink") {
		tokens := stripFiller(tokenise(n))
		for i := len(tokens) - 1; i > 0; i-- {
			target := strings.Join(tokens[i:], " ")
			if matches, confidence, tie := bestMatches(target, normalisedPool(ctx.EnemyShips)); !tie && len(matches) == 1 {
				return makeIntent(Command, "attack", []string{matches[0]}, nil, minScore(0.82, confidence))
			}
		}
	}

	if containsAnyPhrase(n, "this is mine", "plant the flag", "hoist the colours", "hoist the colors") {
		return makeIntent(Command, "claim", nil, nil, 0.8)
	}

	return nil
}

func normalisedPool(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if n := normaliseInput(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders an intent back to its canonical order text,
// used when the player picks a clarify option.
func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	for _, arg := range intent.Args {
		if n := normaliseInput(arg); n != "" {
			args = append(args, n)
		}
	}
	if intent.Coord != nil {
		args = append(args, fmt.Sprintf("%d,%d", intent.Coord.X, intent.Coord.Y))
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
