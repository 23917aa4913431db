package service

import (
	"regexp"
	"strings"
)

var fenceStartPattern = regexp.MustCompile("(?is)^```[ \\t]*(?:json)?[ \\t]*\\r?\\n?")

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
	fence      = "```"
)

// stripCodeFences returns the JSON payload of a model reply. It drops a
// <think>...</think> block (or everything up to a lone </think>), then, when
// the reply opens with a ``` or ```json fence, keeps only the fenced body and
// discards any prose after the closing fence.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))

	thinkStart := strings.Index(s, thinkOpen)
	thinkEnd := strings.Index(s, thinkClose)
	switch {
	case thinkStart != -1 && thinkEnd > thinkStart:
		s = strings.TrimSpace(s[:thinkStart] + s[thinkEnd+len(thinkClose):])
	case thinkStart == -1 && thinkEnd != -1:
		s = strings.TrimSpace(s[thinkEnd+len(thinkClose):])
	}

	loc := fenceStartPattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	s = s[loc[1]:]
	if end := strings.Index(s, fence); end != -1 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}
