package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EmptySelection(t *testing.T) {
	report := Analyze(nil, nil)

	assert.Equal(t, 0, report.RiskScore)
	assert.Equal(t, 100, report.ComplianceScore)
	assert.Equal(t, "Good", report.ComplianceLevel)
	assert.Equal(t, "Low", report.RiskLevel)
	assert.Empty(t, report.High)
	assert.Empty(t, report.Medium)
	assert.Empty(t, report.Low)
	assert.NotNil(t, report.Gaps, "gaps should serialize as [] rather than null")
	assert.Empty(t, report.Gaps)
	assert.NotNil(t, report.ApplicableLaws)
}

func TestAnalyze_UnknownInputsSkipped(t *testing.T) {
	report := Analyze(
		[]string{"hirevue", "not-a-real-tool", "also-fake"},
		[]string{"IL", "ZZ"},
	)

	assert.Equal(t, []string{"not-a-real-tool", "also-fake"}, report.SkippedTools)
	assert.Equal(t, []string{"ZZ"}, report.SkippedStates)

	// The unknown inputs contribute nothing: one high tool plus one
	// regulated state.
	assert.Equal(t, 45, report.RiskScore)
	assert.Len(t, report.High, 1)
}

func TestAnalyze_HighRiskToolNoRegulatedState(t *testing.T) {
	report := Analyze([]string{"hirevue"}, []string{"WA"})

	require.Len(t, report.High, 1)
	assert.Equal(t, "hirevue", report.High[0].ToolID)
	assert.Equal(t, "Uses AI for employment decisions", report.High[0].Reason)
	assert.Equal(t, 30, report.RiskScore)
	assert.Equal(t, 70, report.ComplianceScore)
	assert.Equal(t, "Good", report.ComplianceLevel)
	assert.Equal(t, "Low", report.RiskLevel)

	// A high-risk tool always produces a gap, even outside regulated
	// jurisdictions. Federal exposure does not depend on the state.
	require.Len(t, report.Gaps, 1)
	assert.Equal(t, "HireVue", report.Gaps[0].Tool)
	assert.NotEmpty(t, report.Gaps[0].Laws, "tool-intrinsic laws apply regardless of state")
}

func TestAnalyze_HighRiskToolInRegulatedState(t *testing.T) {
	report := Analyze([]string{"hirevue"}, []string{"IL"})

	require.Len(t, report.High, 1)
	assert.Equal(t, "Uses AI for employment decisions in regulated state(s)", report.High[0].Reason)
	assert.Equal(t, 45, report.RiskScore)
	assert.Equal(t, 55, report.ComplianceScore)
	assert.Equal(t, "Fair", report.ComplianceLevel)
	assert.Equal(t, "Medium", report.RiskLevel)
	assert.NotEmpty(t, report.ApplicableLaws)
}

func TestAnalyze_ScoreClampedAt100(t *testing.T) {
	report := Analyze(
		[]string{"hirevue", "pymetrics", "eightfold", "greenhouse", "checkr"},
		[]string{"IL", "CO", "CA"},
	)

	assert.Equal(t, 100, report.RiskScore)
	assert.Equal(t, 0, report.ComplianceScore)
	assert.Equal(t, "Poor", report.ComplianceLevel)
	assert.Equal(t, "High", report.RiskLevel)
}

func TestAnalyze_ScoresAlwaysComplement(t *testing.T) {
	selections := [][2][]string{
		{nil, nil},
		{{"hirevue"}, nil},
		{{"hirevue", "indeed"}, {"IL"}},
		{{"hirevue", "pymetrics", "eightfold", "checkr"}, {"IL", "CO", "CA", "TX"}},
	}
	for _, sel := range selections {
		report := Analyze(sel[0], sel[1])
		assert.Equal(t, 100, report.RiskScore+report.ComplianceScore)
		assert.GreaterOrEqual(t, report.RiskScore, 0)
		assert.LessOrEqual(t, report.RiskScore, 100)
	}
}

func TestAnalyze_DuplicatesCountedOnce(t *testing.T) {
	report := Analyze(
		[]string{"hirevue", "hirevue", "hirevue"},
		[]string{"IL", "IL"},
	)

	assert.Len(t, report.High, 1)
	assert.Equal(t, 45, report.RiskScore)
}

func TestAnalyze_MediumMonitoringTool(t *testing.T) {
	report := Analyze([]string{"hubstaff"}, []string{"CT"})

	require.Len(t, report.Medium, 1)
	assert.Equal(t, "Employee monitoring with potential privacy implications", report.Medium[0].Reason)
	assert.Empty(t, report.Gaps, "medium-risk tools do not create gaps")
}

func TestAnalyze_LowRiskToolAddsNothing(t *testing.T) {
	report := Analyze([]string{"glassdoor"}, []string{"IL"})

	require.Len(t, report.Low, 1)
	assert.Empty(t, report.Low[0].Laws)
	// Only the regulated state contributes to the score.
	assert.Equal(t, 15, report.RiskScore)
}

func TestAnalyze_OtherToolIgnored(t *testing.T) {
	report := Analyze([]string{"other"}, nil)

	assert.Equal(t, 0, report.TotalTools())
	assert.Empty(t, report.SkippedTools, "the catch-all entry is known, just unscored")
}

func TestComplianceLevel_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "Poor"},
		{39, "Poor"},
		{40, "Fair"},
		{69, "Fair"},
		{70, "Good"},
		{100, "Good"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, complianceLevel(tt.score), "score %d", tt.score)
	}
}

func TestRiskLevel_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "Low"},
		{40, "Low"},
		{41, "Medium"},
		{70, "Medium"},
		{71, "High"},
		{100, "High"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskLevel(tt.score), "score %d", tt.score)
	}
}
