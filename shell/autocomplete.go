package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/oska/config"
	"github.com/domino14/oska/equity"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-depth")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"solve": {
		Options: []string{"-depth", "-nodes", "-target-only", "-trace"},
	},
	"side": {
		Args: []string{"white", "black"},
	},
	"heuristic": {
		Args: []string{equity.BlockingHeuristicName, equity.CustomHeuristicName},
	},
	"set": {
		Args: settable,
	},
	"help": {
		Args: commandNames,
	},
}

var commandNames = []string{
	"help", "load", "side", "depth", "nodes", "heuristic", "show", "moves",
	"solve", "path", "set", "script", "batch", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		// Completing a command name
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-target-only":
			completions = boolValues
		case cmdName == "set" && len(fields) >= 2 && (len(fields) > 2 || endsWithSpace):
			switch fields[1] {
			case config.ConfigHeuristic:
				completions = commandMetadata["heuristic"].Args
			case config.ConfigTargetOnly, config.ConfigHeuristicCache:
				completions = boolValues
			}
		default:
			md := commandMetadata[cmdName]
			if strings.HasPrefix(prefix, "-") {
				completions = md.Options
			} else {
				completions = append(append([]string{}, md.Args...), md.Options...)
			}
		}
	}

	var out [][]rune
	for _, cand := range completions {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]))
		}
	}
	return out, len([]rune(prefix))
}
