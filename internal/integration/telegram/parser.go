package telegram

import (
	"strings"
	"unicode"
)

// Command is a parsed slash command.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits "/name@bot args" into a Command. It returns false when text is not a command.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}

	name, rest := text[1:], ""
	if i := strings.IndexFunc(name, unicode.IsSpace); i >= 0 {
		name, rest = name[:i], name[i:]
	}
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return Command{}, false
	}

	return Command{
		Name: strings.ToLower(name),
		Args: SplitArgs(rest),
	}, true
}

// SplitArgs splits input on whitespace while keeping double-quoted segments together.
// Quotes may appear mid-token, so title="Ship v2" yields one argument.
// Typographic quotes inserted by mobile keyboards count as quotes.
func SplitArgs(input string) []string {
	var (
		args     []string
		current  strings.Builder
		inQuotes bool
		hasToken bool
	)

	for _, r := range input {
		switch {
		case r == '"' || r == '“' || r == '”':
			inQuotes = !inQuotes
			hasToken = true
		case unicode.IsSpace(r) && !inQuotes:
			if hasToken {
				args = append(args, current.String())
				current.Reset()
				hasToken = false
			}
		default:
			current.WriteRune(r)
			hasToken = true
		}
	}
	if hasToken {
		args = append(args, current.String())
	}

	return args
}

// ParseFields collects key=value arguments into an update payload.
// Arguments without "=" are ignored.
func ParseFields(args []string) map[string]any {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func isMention(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "@")
}

func isDate(arg string) bool {
	if len(arg) != len("2006-01-02") {
		return false
	}
	for i, r := range arg {
		if i == 4 || i == 7 {
			if r != '-' {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
