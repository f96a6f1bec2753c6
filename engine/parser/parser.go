// Package parser converts operator command strings into Command structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"
)

// Command is a parsed operator command. Table and Args keep the case the
// operator typed; Verb is lowercased and canonical.
type Command struct {
	Verb  string
	Table string
	Args  []string
}

var verbAliases = map[string]string{
	// Listing
	"ls":   "tables",
	"list": "tables",

	// Show
	"cat":   "show",
	"view":  "show",
	"print": "show",

	// Info
	"i":       "info",
	"x":       "info",
	"inspect": "info",
	"examine": "info",

	// Roll
	"r":    "roll",
	"kill": "roll",
	"loot": "roll",

	// Edits
	"amt":    "amount",
	"click":  "toggle",
	"new":    "add",
	"rm":     "remove",
	"del":    "remove",
	"delete": "remove",
}

// Prepositions that introduce the table in "info 2 of zombie" style input.
var prepositions = map[string]bool{
	"from": true, "of": true, "in": true, "on": true,
}

// Filler words dropped from everything except add commands.
var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"table": true, "entry": true, "times": true,
}

// Parse converts a raw command string into a Command.
func Parse(input string) Command {
	words := strings.Fields(input)
	if len(words) == 0 {
		return Command{}
	}

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	verb := strings.ToLower(words[0])
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	rest := words[1:]

	// Add keeps its arguments verbatim; the tail may be message text.
	if verb == "add" {
		if len(rest) == 0 {
			return Command{Verb: verb}
		}
		return Command{Verb: verb, Table: rest[0], Args: rest[1:]}
	}

	rest = stripFillers(rest)
	table, args := splitOnPreposition(rest)
	return Command{Verb: verb, Table: table, Args: args}
}

// expandMultiWordVerbs handles "list tables", "roll on", "reset amount" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	second := strings.ToLower(words[1])
	switch strings.ToLower(words[0]) {
	case "list", "show":
		if second == "tables" {
			return append([]string{"tables"}, words[2:]...)
		}
	case "roll":
		if second == "on" {
			return append([]string{"roll"}, words[2:]...)
		}
	case "reset":
		if second == "amount" {
			return append([]string{"reset"}, words[2:]...)
		}
	case "change", "set":
		if second == "amount" {
			return append([]string{"amount"}, words[2:]...)
		}
	}

	return words
}

// stripFillers removes filler words from the word list.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[strings.ToLower(w)] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition finds the table name. With a preposition, the word
// after it is the table and the words around it are arguments. Without
// one, the first word is the table.
func splitOnPreposition(words []string) (table string, args []string) {
	for i, w := range words {
		if prepositions[strings.ToLower(w)] && i+1 < len(words) {
			args = append(args, words[:i]...)
			args = append(args, words[i+2:]...)
			return words[i+1], args
		}
	}
	if len(words) == 0 {
		return "", nil
	}
	return words[0], words[1:]
}
