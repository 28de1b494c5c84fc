// Package console is the harness's debug command line. It resolves typed
// verbs against registered commands with alias, prefix and typo matching,
// so "tutroials" still lands on "tutorials" with a note instead of a cold
// "unknown command".
package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Command is one console verb.
type Command struct {
	Name    string
	Aliases []string
	Help    string
	Run     func(args []string) string
}

// Console holds the verb registry.
type Console struct {
	commands map[string]Command
	aliases  map[string]string // alias -> canonical
	order    []string
}

func New() *Console {
	return &Console{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command. Later registrations with the same name replace
// earlier ones.
func (c *Console) Register(cmd Command) {
	cmd.Name = normalize(cmd.Name)
	if cmd.Name == "" {
		return
	}
	if _, seen := c.commands[cmd.Name]; !seen {
		c.order = append(c.order, cmd.Name)
	}
	c.commands[cmd.Name] = cmd
	for _, a := range cmd.Aliases {
		if a = normalize(a); a != "" {
			c.aliases[a] = cmd.Name
		}
	}
}

// Execute parses one input line and runs the matched command. The result
// is always a printable line, never an error: the console is a debugging
// surface and should explain itself.
func (c *Console) Execute(line string) string {
	tokens := strings.Fields(normalize(line))
	if len(tokens) == 0 {
		return "Type help for a list of commands."
	}
	verb, args := tokens[0], tokens[1:]

	if name, ok := c.resolve(verb); ok {
		return c.run(name, args)
	}
	if suggestion := c.nearest(verb); suggestion != "" {
		return fmt.Sprintf("Unknown command %q. Did you mean %q?", verb, suggestion)
	}
	return fmt.Sprintf("Unknown command %q. Type help for a list.", verb)
}

// Help lists every command in registration order.
func (c *Console) Help() string {
	var b strings.Builder
	for _, name := range c.order {
		cmd := c.commands[name]
		fmt.Fprintf(&b, "%-12s %s\n", name, cmd.Help)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *Console) run(name string, args []string) string {
	cmd := c.commands[name]
	if cmd.Run == nil {
		return fmt.Sprintf("%s is not wired up.", name)
	}
	return cmd.Run(args)
}

func (c *Console) resolve(verb string) (string, bool) {
	if _, ok := c.commands[verb]; ok {
		return verb, true
	}
	if name, ok := c.aliases[verb]; ok {
		return name, true
	}
	// Unambiguous prefix of a single command.
	if len(verb) >= 2 {
		var hit string
		for _, name := range c.order {
			if strings.HasPrefix(name, verb) {
				if hit != "" {
					return "", false
				}
				hit = name
			}
		}
		if hit != "" {
			return hit, true
		}
	}
	return "", false
}

// nearest finds the closest verb within a typo budget that scales with
// word length.
func (c *Console) nearest(verb string) string {
	if len(verb) < 3 {
		return ""
	}
	names := make([]string, 0, len(c.order)+len(c.aliases))
	names = append(names, c.order...)
	for a := range c.aliases {
		names = append(names, a)
	}
	sort.Strings(names)

	best, bestDist := "", 0
	for _, name := range names {
		dist := levenshtein.ComputeDistance(verb, name)
		if dist > typoLimit(len(name)) {
			continue
		}
		if best == "" || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	if canonical, ok := c.aliases[best]; ok {
		return canonical
	}
	return best
}

func typoLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
