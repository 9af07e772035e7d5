package chat

import (
	"strings"
	"unicode"
)

const (
	nickPrefix = "NICK "
	maxNameLen = 32   // runes kept in a label
	maxLineLen = 2048 // bytes kept of a chat line
)

type inputKind int

const (
	inputChat inputKind = iota
	inputRename
	inputRenameEmpty
	inputRenameInvalid
)

// parsed is the interpretation of one inbound peer line.
type parsed struct {
	kind inputKind
	name string // sanitized label, set for inputRename
	body string // chat body, set for inputChat
}

// parseLine interprets one peer line. Trailing CR/LF must already be
// stripped by the reader. A "NICK " prefix makes the line a rename attempt;
// anything else, including a bare "NICK", is chat content.
func parseLine(line string) parsed {
	if strings.HasPrefix(line, nickPrefix) {
		raw := strings.TrimSpace(line[len(nickPrefix):])
		if raw == "" {
			return parsed{kind: inputRenameEmpty}
		}
		name := sanitizeName(raw)
		if name == "" {
			return parsed{kind: inputRenameInvalid}
		}
		return parsed{kind: inputRename, name: name}
	}
	if len(line) > maxLineLen {
		line = line[:maxLineLen]
	}
	return parsed{kind: inputChat, body: line}
}

// sanitizeName keeps printable runes that are not '[' or ']' and truncates
// the result to maxNameLen runes. Brackets are reserved for message framing.
func sanitizeName(raw string) string {
	var b strings.Builder
	n := 0
	for _, r := range raw {
		if !unicode.IsPrint(r) || r == '[' || r == ']' {
			continue
		}
		b.WriteRune(r)
		n++
		if n == maxNameLen {
			break
		}
	}
	return b.String()
}
