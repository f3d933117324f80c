package sections

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// nameStopWords are tokens that disqualify a line from being the candidate's name.
var nameStopWords = []string{"resume", "cv", "curriculum", "email", "phone", "address"}

// ExtractContact pulls contact details from raw resume text using regex
// heuristics. Missing fields stay empty; this never fails.
func ExtractContact(text string) types.ContactInfo {
	info := types.ContactInfo{}

	if email := emailPattern.FindString(text); email != "" {
		info.Email = email
	}
	if phone := phonePattern.FindString(text); strings.TrimSpace(phone) != "" {
		info.Phone = strings.TrimSpace(phone)
	}
	info.Name = extractName(text)

	return info
}

// extractName guesses the candidate name: the first short line near the top
// that has no digits, no email, and no document boilerplate words.
func extractName(text string) string {
	for _, line := range strings.Split(Normalize(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(strings.Fields(line)) > 4 {
			continue
		}
		if strings.ContainsAny(line, "0123456789@") {
			continue
		}
		lower := strings.ToLower(line)
		skip := false
		for _, word := range nameStopWords {
			if strings.Contains(lower, word) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		return line
	}
	return ""
}
