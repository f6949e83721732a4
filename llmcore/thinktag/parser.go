package thinktag

import "strings"

const openTag = "<think>"
const closeTag = "</think>"

// FragmentKind distinguishes a plain-text fragment from a reasoning
// fragment emitted by Parser.
type FragmentKind int

const (
	Text FragmentKind = iota
	Thinking
)

// Fragment is one contiguous piece of text or reasoning content
// recovered from the tagged stream.
type Fragment struct {
	Kind    FragmentKind
	Content string
}

// Parser incrementally demultiplexes <think>...</think> tags out of a
// text stream. Feed chunks in arrival order; a tag split across two
// chunks is buffered until it resolves.
type Parser struct {
	buffer   strings.Builder
	inThink  bool
}

// Feed appends chunk to the internal buffer and returns every
// fragment that can be emitted without more input.
func (p *Parser) Feed(chunk string) []Fragment {
	p.buffer.WriteString(chunk)

	var fragments []Fragment
	for {
		var emitted bool
		if p.inThink {
			emitted = p.emitThinking(&fragments)
		} else {
			emitted = p.emitText(&fragments)
		}
		if !emitted {
			break
		}
	}
	return fragments
}

// Flush emits whatever remains buffered as a single fragment of
// whichever mode was active, and resets the parser to text mode.
func (p *Parser) Flush() []Fragment {
	pending := p.buffer.String()
	p.buffer.Reset()

	if pending == "" {
		p.inThink = false
		return nil
	}

	kind := Text
	if p.inThink {
		kind = Thinking
	}
	p.inThink = false
	return []Fragment{{Kind: kind, Content: pending}}
}

func (p *Parser) emitText(fragments *[]Fragment) bool {
	buf := p.buffer.String()

	if idx := strings.Index(buf, openTag); idx >= 0 {
		pushNonEmpty(fragments, Text, buf[:idx])
		p.reset(buf[idx+len(openTag):])
		p.inThink = true
		return true
	}

	safeLen := len(buf) - partialTagSuffixLen(buf, openTag)
	if safeLen == 0 {
		return false
	}

	pushNonEmpty(fragments, Text, buf[:safeLen])
	p.reset(buf[safeLen:])
	return false
}

func (p *Parser) emitThinking(fragments *[]Fragment) bool {
	buf := p.buffer.String()

	if idx := strings.Index(buf, closeTag); idx >= 0 {
		pushNonEmpty(fragments, Thinking, buf[:idx])
		p.reset(buf[idx+len(closeTag):])
		p.inThink = false
		return true
	}

	safeLen := len(buf) - partialTagSuffixLen(buf, closeTag)
	if safeLen == 0 {
		return false
	}

	pushNonEmpty(fragments, Thinking, buf[:safeLen])
	p.reset(buf[safeLen:])
	return false
}

func (p *Parser) reset(remaining string) {
	p.buffer.Reset()
	p.buffer.WriteString(remaining)
}

func pushNonEmpty(fragments *[]Fragment, kind FragmentKind, s string) {
	if s == "" {
		return
	}
	*fragments = append(*fragments, Fragment{Kind: kind, Content: s})
}

// partialTagSuffixLen returns the length of the longest proper prefix
// of tag that input ends with, so a tag split across chunk boundaries
// is never mistaken for plain text.
func partialTagSuffixLen(input, tag string) int {
	maxSuffixLen := len(input)
	if maxSuffixLen > len(tag)-1 {
		maxSuffixLen = len(tag) - 1
	}

	for suffixLen := maxSuffixLen; suffixLen >= 1; suffixLen-- {
		if strings.HasSuffix(input, tag[:suffixLen]) {
			return suffixLen
		}
	}
	return 0
}
