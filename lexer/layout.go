package lexer

// layout converts leading TAB tokens to INDENT/DEDENT tokens.
//
// Raw tokens are split into lines ending with END_OF_LINE or END_OF_FILE.
// Lines containing only TAB and line end tokens are dropped.
// Indentation level of a line is the number of its leading TAB tokens.
// Each level of increase relative to previous non-blank line emits INDENT,
// each level of decrease emits DEDENT followed by END_OF_LINE.
// The last line always ends with END_OF_LINE, then all open levels are closed
// and a single END_OF_FILE is appended. Remaining TAB tokens are dropped.
func layout(raw []*Token) []*Token {
	res := make([]*Token, 0, len(raw)+8)
	eof := raw[len(raw)-1]
	level := 0
	lineStart := 0

	for i, t := range raw {
		if t.kind != EndOfLine && t.kind != EndOfFile {
			continue
		}

		line := raw[lineStart : i+1]
		lineStart = i + 1
		indent := 0
		for indent < len(line) && line[indent].kind == Tab {
			indent++
		}
		first := line[indent]
		if first.kind == EndOfLine || first.kind == EndOfFile || isBlank(line[indent:]) {
			continue
		}

		for ; level < indent; level++ {
			res = append(res, first.synthesized(Indent))
		}
		for ; level > indent; level-- {
			res = append(res, first.synthesized(Dedent), first.synthesized(EndOfLine))
		}
		for _, lt := range line[indent:] {
			switch lt.kind {
			case Tab:
			case EndOfFile:
				res = append(res, lt.synthesized(EndOfLine))
			default:
				res = append(res, lt)
			}
		}
	}

	for ; level > 0; level-- {
		res = append(res, eof.synthesized(Dedent), eof.synthesized(EndOfLine))
	}
	return append(res, eof)
}

func isBlank(line []*Token) bool {
	for _, t := range line {
		if t.kind != Tab && t.kind != EndOfLine && t.kind != EndOfFile {
			return false
		}
	}
	return true
}
