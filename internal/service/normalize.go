package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/BuzzLyutic/motion-bridge/internal/model"
)

const dateLayout = "2006-01-02"

// Defaults fill in whatever a raw task omits, keyed by domain.
type Defaults struct {
	Domain        string
	Priority      string
	Tags          []string
	DueOffsetDays *int
}

func days(n int) *int { return &n }

var domainDefaults = map[string]Defaults{
	"legal":    {Domain: "legal", Priority: model.PriorityHigh, Tags: []string{"Legal"}, DueOffsetDays: days(3)},
	"biz":      {Domain: "biz", Priority: model.PriorityMedium, Tags: []string{"Biz"}, DueOffsetDays: days(7)},
	"personal": {Domain: "personal", Priority: model.PriorityLow, Tags: []string{"Personal"}},
	"default":  {Domain: "default", Priority: model.PriorityMedium},
}

func DefaultsFor(domain string) Defaults {
	if d, ok := domainDefaults[strings.ToLower(strings.TrimSpace(domain))]; ok {
		return d
	}
	return domainDefaults["default"]
}

// First matching group wins and at most one label is appended.
var energyGroups = []struct {
	label string
	words []string
}{
	{"Energy:High", []string{"affidavit", "contract", "legal", "compliance", "court"}},
	{"Energy:Medium", []string{"plan", "strategy", "roadmap", "review", "design"}},
	{"Energy:Low", []string{"email", "invoice", "schedule", "admin", "file"}},
}

// Normalize turns a raw input into a canonical task record. now anchors the
// due-date fallback and is always taken in UTC.
func Normalize(in model.TaskInput, d Defaults, now time.Time) model.Task {
	t := model.Task{
		Title:    firstNonEmpty(in.Title, in.Name),
		Notes:    firstNonEmpty(in.Notes, in.Description),
		Minutes:  normalizeMinutes(coalesce(in.Minutes, in.Duration)),
		Tags:     mergeTags(in.Tags, in.Labels, d.Tags),
		Due:      normalizeDue(firstNonEmpty(in.Due, in.DueDate), d.DueOffsetDays, now),
		Priority: normalizePriority(in.Priority, d.Priority),
		Domain:   firstNonEmpty(in.Domain, d.Domain),
	}
	if t.Title == "" {
		t.Title = "Untitled task"
	}
	if label := energyLabel(t.Title + " " + t.Notes); label != "" && !contains(t.Tags, label) {
		t.Tags = append(t.Tags, label)
	}
	return t
}

func normalizeMinutes(v any) int {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 25
	}
	m := int(math.Round(f))
	if m < 5 {
		return 5
	}
	if m > 50 {
		return 50
	}
	return m
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func mergeTags(lists ...[]string) []string {
	merged := []string{}
	seen := map[string]bool{}
	for _, list := range lists {
		for _, tag := range list {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	return merged
}

func energyLabel(text string) string {
	text = strings.ToLower(text)
	for _, group := range energyGroups {
		for _, word := range group.words {
			if strings.Contains(text, word) {
				return group.label
			}
		}
	}
	return ""
}

func normalizeDue(raw string, offset *int, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range []string{dateLayout, time.RFC3339} {
			if d, err := time.Parse(layout, raw); err == nil {
				return d.Format(dateLayout)
			}
		}
	}
	if offset != nil {
		return now.UTC().AddDate(0, 0, *offset).Format(dateLayout)
	}
	return ""
}

func normalizePriority(raw, def string) string {
	switch p := strings.ToUpper(strings.TrimSpace(raw)); p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return p
	}
	if def == "" {
		return model.PriorityMedium
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func coalesce(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
