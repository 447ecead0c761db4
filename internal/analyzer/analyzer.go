// Package analyzer computes the tool/jurisdiction risk report behind the
// compliance scan. Analyze is a pure function over the catalog reference
// data: no I/O, no side effects, deterministic for a given selection.
package analyzer

import (
	"github.com/dbartell/employarmor-sub001/internal/catalog"
)

// Scoring policy constants. These are product policy, not derived values.
const (
	highToolWeight       = 30
	mediumToolWeight     = 15
	regulatedStateWeight = 15
	maxRiskScore         = 100

	// Compliance level thresholds on the compliance score.
	fairThreshold = 40
	goodThreshold = 70
)

// ToolMatch is one analyzed tool in a risk bucket.
type ToolMatch struct {
	ToolID   string   `json:"toolId"`
	ToolName string   `json:"toolName"`
	Category string   `json:"category"`
	Laws     []string `json:"laws"`
	Reason   string   `json:"reason"`
}

// Gap is an outstanding compliance exposure derived from a high-risk tool.
type Gap struct {
	Tool     string   `json:"tool"`
	Category string   `json:"category"`
	Laws     []string `json:"laws"`
	Reason   string   `json:"reason"`
}

// Report is the full risk analysis for one selection. Recomputed on every
// invocation and never persisted; only the inputs that produced it are.
type Report struct {
	RiskScore       int    `json:"riskScore"`       // 0-100, clamped
	ComplianceScore int    `json:"complianceScore"` // always 100 - RiskScore
	ComplianceLevel string `json:"complianceLevel"` // "Poor", "Fair", "Good"
	RiskLevel       string `json:"riskLevel"`       // "Low", "Medium", "High"

	High   []ToolMatch `json:"high"`
	Medium []ToolMatch `json:"medium"`
	Low    []ToolMatch `json:"low"`

	Gaps           []Gap    `json:"gaps"`
	ApplicableLaws []string `json:"applicableLaws"`

	// Inputs that were not recognized. Reported rather than silently
	// dropped so callers can surface what was ignored.
	SkippedTools  []string `json:"skippedTools,omitempty"`
	SkippedStates []string `json:"skippedStates,omitempty"`
}

// Analyze maps a set of selected tool ids and state codes to a categorized
// risk report. Unknown ids never error: they are collected into the skipped
// lists and contribute nothing to the score. Empty selections are valid and
// yield a zero-score report.
func Analyze(toolIDs, stateCodes []string) Report {
	var report Report

	states := make([]string, 0, len(stateCodes))
	regulatedCount := 0
	for _, code := range dedupe(stateCodes) {
		if !catalog.IsKnownState(code) {
			report.SkippedStates = append(report.SkippedStates, code)
			continue
		}
		states = append(states, code)
		if catalog.IsRegulated(code) {
			regulatedCount++
		}
	}
	hasRegulated := regulatedCount > 0

	// Statutes triggered purely by where the employer operates.
	var stateLawNames []string
	for _, code := range states {
		for _, l := range catalog.StateLaws(code) {
			stateLawNames = append(stateLawNames, l.ShortName)
		}
	}

	laws := newLawSet()
	for _, id := range dedupe(toolIDs) {
		tool, ok := catalog.ToolByID(id)
		if !ok {
			report.SkippedTools = append(report.SkippedTools, id)
			continue
		}
		if tool.ID == "other" {
			continue
		}

		switch tool.RiskLevel {
		case catalog.RiskHigh:
			matchLaws := dedupe(append(append([]string{}, catalog.ToolLaws(tool.ID)...), stateLawNames...))
			reason := "Uses AI for employment decisions"
			if hasRegulated {
				reason = "Uses AI for employment decisions in regulated state(s)"
			}
			m := ToolMatch{ToolID: tool.ID, ToolName: tool.Name, Category: tool.Category, Laws: matchLaws, Reason: reason}
			report.High = append(report.High, m)
			report.Gaps = append(report.Gaps, Gap{Tool: m.ToolName, Category: m.Category, Laws: m.Laws, Reason: m.Reason})
			laws.add(matchLaws...)

		case catalog.RiskMedium:
			var matchLaws []string
			reason := "Has AI features that could influence employment decisions"
			if tool.Category == catalog.CategoryMonitoring {
				reason = "Employee monitoring with potential privacy implications"
				for _, code := range states {
					if l := catalog.MonitoringPrivacyLaw(code); l != "" {
						matchLaws = append(matchLaws, l)
					}
				}
			} else if hasRegulated && (tool.Category == catalog.CategoryCompensation || tool.Category == catalog.CategoryGeneralAI) {
				matchLaws = append(matchLaws, stateLawNames...)
			}
			matchLaws = dedupe(append(matchLaws, catalog.ToolLaws(tool.ID)...))
			report.Medium = append(report.Medium, ToolMatch{ToolID: tool.ID, ToolName: tool.Name, Category: tool.Category, Laws: matchLaws, Reason: reason})
			laws.add(matchLaws...)

		default:
			// Low-risk tools are listed for category coverage but add no
			// gaps, laws, or score.
			report.Low = append(report.Low, ToolMatch{
				ToolID: tool.ID, ToolName: tool.Name, Category: tool.Category,
				Laws: []string{}, Reason: "No current AI compliance requirements identified",
			})
		}
	}

	score := highToolWeight*len(report.High) +
		mediumToolWeight*len(report.Medium) +
		regulatedStateWeight*regulatedCount
	if score > maxRiskScore {
		score = maxRiskScore
	}

	report.RiskScore = score
	report.ComplianceScore = maxRiskScore - score
	report.ComplianceLevel = complianceLevel(report.ComplianceScore)
	report.RiskLevel = riskLevel(score)
	report.ApplicableLaws = laws.values()
	if report.Gaps == nil {
		report.Gaps = []Gap{}
	}
	return report
}

// TotalTools reports how many selected tools were recognized.
func (r Report) TotalTools() int {
	return len(r.High) + len(r.Medium) + len(r.Low)
}

func complianceLevel(score int) string {
	switch {
	case score >= goodThreshold:
		return "Good"
	case score >= fairThreshold:
		return "Fair"
	default:
		return "Poor"
	}
}

func riskLevel(riskScore int) string {
	switch {
	case riskScore > 70:
		return "High"
	case riskScore > 40:
		return "Medium"
	default:
		return "Low"
	}
}

// lawSet is an insertion-ordered string set.
type lawSet struct {
	seen  map[string]bool
	order []string
}

func newLawSet() *lawSet {
	return &lawSet{seen: make(map[string]bool)}
}

func (s *lawSet) add(laws ...string) {
	for _, l := range laws {
		if l == "" || s.seen[l] {
			continue
		}
		s.seen[l] = true
		s.order = append(s.order, l)
	}
}

func (s *lawSet) values() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
