package collaborator

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
)

// ParseFields reads "Label: value" lines into a map keyed by the lower-cased
// label. Each line is split on its first colon; leading list markers are
// ignored and a repeated label keeps its last value.
func ParseFields(reply string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-*• ")
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.ToLower(strings.Trim(strings.TrimSpace(label), "*_"))
		if label == "" {
			continue
		}
		// The value keeps any later colons: "Name: Gym: AM" reads as "Gym: AM".
		fields[label] = strings.Trim(strings.TrimSpace(value), "*_ ")
	}
	return fields
}

// Draft is a parsed FormatNewPromise reply.
type Draft struct {
	Name        string
	PromiseType models.PromiseType
	Content     string
}

func ParseDraft(reply string) Draft {
	f := ParseFields(reply)
	return Draft{
		Name:        f["name"],
		PromiseType: models.NormalizePromiseType(f["type"]),
		Content:     f["promise"],
	}
}

// Revision is a parsed GenerateUpdatedPromise reply. Missing lines leave
// their field empty.
type Revision struct {
	Name     string
	Content  string
	Deadline string
}

func ParseRevision(reply string) Revision {
	f := ParseFields(reply)
	return Revision{
		Name:     f["name"],
		Content:  f["promise"],
		Deadline: f["deadline"],
	}
}

// Solution is one variant proposed by RefinePromise.
type Solution struct {
	Label string
	Text  string
}

// SolutionLabels are the variant names, in the order the prompt asks for.
var SolutionLabels = []string{"Conservative", "Moderate", "Progressive"}

var (
	solutionHeader = regexp.MustCompile(`(?i)(?:\d+\.\s*|#{1,3}\s*)(?:conservative|moderate|progressive)\s*solution\s*:?`)
	promiseLine    = regexp.MustCompile(`(?i)I promise I will[^\n]+`)
	listMarker     = regexp.MustCompile(`^[-*\d.]\s*`)
)

// ParseSolutions extracts up to three labelled solutions. It looks for the
// numbered headers first, then for bare "I promise I will" sentences, then
// falls back to the first non-empty lines.
func ParseSolutions(reply string) []Solution {
	if IsErrorReply(reply) {
		return nil
	}

	var out []Solution
	add := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" || len(out) >= len(SolutionLabels) {
			return
		}
		out = append(out, Solution{Label: SolutionLabels[len(out)], Text: text})
	}

	idx := solutionHeader.FindAllStringIndex(reply, -1)
	for i, loc := range idx {
		end := len(reply)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		chunk := strings.TrimSpace(reply[loc[1]:end])
		if m := promiseLine.FindString(chunk); m != "" {
			add(m)
			continue
		}
		add(firstContentLine(chunk))
	}
	if len(out) > 0 {
		return out
	}

	for _, m := range promiseLine.FindAllString(reply, 3) {
		add(m)
	}
	if len(out) > 0 {
		return out
	}

	for _, line := range strings.Split(reply, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		add(listMarker.ReplaceAllString(strings.TrimSpace(line), ""))
	}
	return out
}

func firstContentLine(chunk string) string {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "---") {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "-* "))
	}
	return ""
}

// FallbackSolutions renders generic variants of content in the same shape as
// a RefinePromise reply. It is offered when the generator is unavailable.
func FallbackSolutions(content string) string {
	core := strings.TrimSpace(content)
	if len(core) >= len("I promise I will") && strings.EqualFold(core[:len("I promise I will")], "I promise I will") {
		core = strings.TrimSpace(core[len("I promise I will"):])
	}
	return "1. Conservative Solution:\n- Revised promise: I promise I will " + core + ", but with a smaller scope\n\n" +
		"2. Moderate Solution:\n- Revised promise: I promise I will " + core + ", with adjusted expectations\n\n" +
		"3. Progressive Solution:\n- Revised promise: I promise I will " + core + ", and push even further"
}
