package shell

// Parse builds pipelines out of tokens. Every returned Command is the head
// of a pipeline; later stages hang off Next. A nil result means there was
// nothing to run.
//
// Missing redirection targets are ignored rather than reported.
func Parse(tokens []Token) []*Command {
	p := &parser{tokens: tokens}

	var out []*Command
	for p.more() {
		out = append(out, p.parseStage())
	}
	return out
}

// ParseLine lexes and parses a line.
func ParseLine(line string) []*Command {
	return Parse(Lex(line))
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) more() bool {
	return p.pos < len(p.tokens)
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

// next consumes a token, ok is false at the end of input.
func (p *parser) next() (tok Token, ok bool) {
	if !p.more() {
		return Token{}, false
	}
	tok = p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) parseStage() *Command {
	cmd := &Command{}
	if name, ok := p.next(); ok {
		cmd.Name = name.Value
	}

	for p.more() {
		switch p.peek().Kind {
		case Pipe:
			p.next()
			cmd.Operator = OpPipe
			cmd.Next = p.parseStage()
			return cmd

		case RedirectIn:
			p.next()
			if file, ok := p.next(); ok {
				cmd.InputRedirection = file.Value
			}

		case RedirectOut, AppendOut:
			op, _ := p.next()
			if file, ok := p.next(); ok {
				cmd.OutputRedirection = file.Value
				cmd.AppendOutput = op.Kind == AppendOut
			}

		case Background:
			p.next()
			cmd.Background = true
			cmd.Operator = OpBackground
			return cmd

		default:
			arg, _ := p.next()
			cmd.Args = append(cmd.Args, arg.Value)
		}
	}

	return cmd
}
