// Package catalog holds the immutable reference data the analyzer and
// generator operate on: the AI hiring tool directory and the regulated
// jurisdiction table. Loaded once at startup, never mutated at runtime.
package catalog

// RiskLevel classifies how directly a tool participates in employment decisions.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"   // Directly uses AI for employment decisions
	RiskMedium RiskLevel = "medium" // AI features that could affect employment decisions
	RiskLow    RiskLevel = "low"    // No current compliance requirements identified
)

// ToolRecord identifies a third-party AI hiring tool.
type ToolRecord struct {
	ID          string // Stable slug used in API requests
	Name        string
	Category    string
	Description string
	CommonUses  []string
	RiskLevel   RiskLevel
}

// Tool categories as shown in the directory.
const (
	CategoryHiring        = "AI Hiring & Recruiting"
	CategoryJobBoards     = "Job Boards"
	CategoryHRIS          = "HRIS / Payroll"
	CategoryCommunication = "Communication"
	CategoryBackground    = "Background Checks"
	CategoryGeneralAI     = "General AI"
	CategoryCompensation  = "Compensation"
	CategoryMonitoring    = "Monitoring"
	CategoryOther         = "Other"
)

var tools = []ToolRecord{
	// AI Hiring & Recruiting
	{ID: "linkedin-recruiter", Name: "LinkedIn Recruiter", Category: CategoryHiring, Description: "AI-powered candidate recommendations, search ranking, and InMail suggestions", CommonUses: []string{"Candidate sourcing", "Profile ranking", "Outreach optimization"}, RiskLevel: RiskHigh},
	{ID: "hirevue", Name: "HireVue", Category: CategoryHiring, Description: "AI-powered video interview analysis, game-based assessments", CommonUses: []string{"Video interview scoring", "Behavioral analysis", "Skills assessment"}, RiskLevel: RiskHigh},
	{ID: "pymetrics", Name: "Pymetrics", Category: CategoryHiring, Description: "Neuroscience-based games to assess cognitive and emotional traits", CommonUses: []string{"Soft skills assessment", "Role fit prediction", "Bias reduction"}, RiskLevel: RiskHigh},
	{ID: "eightfold", Name: "Eightfold AI", Category: CategoryHiring, Description: "AI platform for talent acquisition, management, and internal mobility", CommonUses: []string{"Candidate matching", "Career pathing", "Skills inference"}, RiskLevel: RiskHigh},
	{ID: "greenhouse", Name: "Greenhouse", Category: CategoryHiring, Description: "Applicant tracking with AI-powered features for candidate scoring", CommonUses: []string{"Application tracking", "Interview scheduling", "Candidate scoring"}, RiskLevel: RiskHigh},
	{ID: "lever", Name: "Lever", Category: CategoryHiring, Description: "ATS and CRM with AI nurture campaigns and candidate recommendations", CommonUses: []string{"Pipeline management", "Candidate nurturing", "Analytics"}, RiskLevel: RiskHigh},
	{ID: "workday", Name: "Workday Recruiting", Category: CategoryHiring, Description: "Enterprise recruiting with machine learning for candidate matching", CommonUses: []string{"Enterprise recruiting", "Internal mobility", "Workforce planning"}, RiskLevel: RiskHigh},
	{ID: "textio", Name: "Textio", Category: CategoryHiring, Description: "AI-powered writing platform for inclusive job descriptions", CommonUses: []string{"Job description optimization", "Bias detection", "Language analysis"}, RiskLevel: RiskHigh},
	{ID: "paradox-olivia", Name: "Paradox (Olivia)", Category: CategoryHiring, Description: "AI assistant for candidate screening, scheduling, and FAQs", CommonUses: []string{"Chatbot screening", "Interview scheduling", "Candidate engagement"}, RiskLevel: RiskHigh},
	{ID: "spark-hire", Name: "Spark Hire", Category: CategoryHiring, Description: "Video interviewing platform with AI-assisted features", CommonUses: []string{"One-way video interviews", "Live interviews", "Candidate evaluation"}, RiskLevel: RiskHigh},
	{ID: "criteria", Name: "Criteria Corp", Category: CategoryHiring, Description: "Pre-employment testing with AI scoring", CommonUses: []string{"Aptitude testing", "Personality assessment", "Skills testing"}, RiskLevel: RiskHigh},

	// Job Boards
	{ID: "indeed", Name: "Indeed", Category: CategoryJobBoards, Description: "AI matching algorithms, resume screening, and candidate ranking", CommonUses: []string{"Job matching", "Resume screening", "Candidate ranking"}, RiskLevel: RiskMedium},
	{ID: "ziprecruiter", Name: "ZipRecruiter", Category: CategoryJobBoards, Description: "AI matching technology to connect employers with candidates", CommonUses: []string{"Job distribution", "Candidate matching", "Application management"}, RiskLevel: RiskMedium},
	{ID: "glassdoor", Name: "Glassdoor", Category: CategoryJobBoards, Description: "Job board with employer reviews and salary data", CommonUses: []string{"Job posting", "Employer branding", "Salary benchmarking"}, RiskLevel: RiskLow},
	{ID: "handshake", Name: "Handshake", Category: CategoryJobBoards, Description: "Early talent recruiting platform for college students and recent grads", CommonUses: []string{"Campus recruiting", "Internship postings", "Early talent pipeline"}, RiskLevel: RiskLow},
	{ID: "dice", Name: "Dice", Category: CategoryJobBoards, Description: "Tech-focused job board with AI-powered candidate matching", CommonUses: []string{"Tech recruiting", "Candidate search", "Job distribution"}, RiskLevel: RiskMedium},

	// HRIS / Payroll
	{ID: "rippling", Name: "Rippling", Category: CategoryHRIS, Description: "Unified HR, IT, and finance platform with automation features", CommonUses: []string{"Payroll", "Benefits administration", "Onboarding automation"}, RiskLevel: RiskMedium},
	{ID: "adp", Name: "ADP", Category: CategoryHRIS, Description: "Enterprise payroll and HR management with analytics", CommonUses: []string{"Payroll processing", "Tax compliance", "HR analytics"}, RiskLevel: RiskMedium},
	{ID: "gusto", Name: "Gusto", Category: CategoryHRIS, Description: "Payroll, benefits, and HR for small businesses", CommonUses: []string{"Payroll", "Benefits", "Compliance"}, RiskLevel: RiskLow},
	{ID: "trinet", Name: "TriNet", Category: CategoryHRIS, Description: "PEO providing HR solutions for small and midsize businesses", CommonUses: []string{"PEO services", "Payroll", "Risk mitigation"}, RiskLevel: RiskLow},
	{ID: "paylocity", Name: "Paylocity", Category: CategoryHRIS, Description: "Cloud-based payroll and HCM platform", CommonUses: []string{"Payroll", "Talent management", "Workforce management"}, RiskLevel: RiskLow},
	{ID: "bamboohr", Name: "BambooHR", Category: CategoryHRIS, Description: "HR software with applicant tracking and employee management", CommonUses: []string{"Small business HR", "Applicant tracking", "Onboarding"}, RiskLevel: RiskMedium},
	{ID: "paychex", Name: "Paychex", Category: CategoryHRIS, Description: "Payroll, HR, and benefits outsourcing for businesses of all sizes", CommonUses: []string{"Payroll", "Benefits administration", "HR services"}, RiskLevel: RiskLow},

	// Communication
	{ID: "slack", Name: "Slack", Category: CategoryCommunication, Description: "Business messaging platform with AI-powered search and summaries", CommonUses: []string{"Team messaging", "Channel organization", "Workflow automation"}, RiskLevel: RiskLow},
	{ID: "microsoft-teams", Name: "Microsoft Teams", Category: CategoryCommunication, Description: "Collaboration platform with AI Copilot features", CommonUses: []string{"Video meetings", "Team chat", "Document collaboration"}, RiskLevel: RiskMedium},
	{ID: "zoom", Name: "Zoom", Category: CategoryCommunication, Description: "Video conferencing with AI meeting summaries and transcription", CommonUses: []string{"Video interviews", "Team meetings", "Webinars"}, RiskLevel: RiskMedium},
	{ID: "google-meet", Name: "Google Meet", Category: CategoryCommunication, Description: "Video conferencing with AI noise cancellation and captions", CommonUses: []string{"Video calls", "Interview scheduling", "Team meetings"}, RiskLevel: RiskLow},

	// Background Checks
	{ID: "checkr", Name: "Checkr", Category: CategoryBackground, Description: "AI-powered background checks with adjudication assistance", CommonUses: []string{"Background screening", "Compliance checks", "Risk assessment"}, RiskLevel: RiskHigh},
	{ID: "hireright", Name: "HireRight", Category: CategoryBackground, Description: "Global background screening and workforce solutions", CommonUses: []string{"Background checks", "Drug testing", "I-9 verification"}, RiskLevel: RiskLow},
	{ID: "sterling", Name: "Sterling", Category: CategoryBackground, Description: "Background and identity verification services", CommonUses: []string{"Criminal checks", "Identity verification", "Credential verification"}, RiskLevel: RiskLow},
	{ID: "goodhire", Name: "GoodHire", Category: CategoryBackground, Description: "Employment background checks for businesses of all sizes", CommonUses: []string{"Background screening", "FCRA compliance", "Candidate portal"}, RiskLevel: RiskLow},

	// General AI
	{ID: "chatgpt", Name: "ChatGPT", Category: CategoryGeneralAI, Description: "OpenAI's general-purpose AI assistant used across business functions", CommonUses: []string{"Content generation", "Email drafting", "Research assistance"}, RiskLevel: RiskMedium},
	{ID: "claude", Name: "Claude", Category: CategoryGeneralAI, Description: "Anthropic's AI assistant for analysis, writing, and reasoning", CommonUses: []string{"Document analysis", "Writing assistance", "Code review"}, RiskLevel: RiskMedium},
	{ID: "copilot", Name: "Microsoft Copilot", Category: CategoryGeneralAI, Description: "AI assistant integrated across Microsoft 365 applications", CommonUses: []string{"Document drafting", "Email summaries", "Data analysis"}, RiskLevel: RiskMedium},
	{ID: "gemini", Name: "Gemini", Category: CategoryGeneralAI, Description: "Google's AI assistant integrated with Workspace", CommonUses: []string{"Research", "Content creation", "Data analysis"}, RiskLevel: RiskMedium},

	// Compensation
	{ID: "pave", Name: "Pave", Category: CategoryCompensation, Description: "Real-time compensation benchmarking and planning platform", CommonUses: []string{"Comp benchmarking", "Offer modeling", "Equity planning"}, RiskLevel: RiskMedium},
	{ID: "salary-com", Name: "Salary.com", Category: CategoryCompensation, Description: "Compensation data, software, and consulting", CommonUses: []string{"Salary surveys", "Pay equity analysis", "Job pricing"}, RiskLevel: RiskMedium},
	{ID: "payscale", Name: "PayScale", Category: CategoryCompensation, Description: "Compensation management software with market data", CommonUses: []string{"Market pricing", "Pay equity", "Compensation planning"}, RiskLevel: RiskMedium},

	// Monitoring
	{ID: "hubstaff", Name: "Hubstaff", Category: CategoryMonitoring, Description: "Employee time tracking and productivity monitoring", CommonUses: []string{"Time tracking", "Screenshot monitoring", "Activity levels"}, RiskLevel: RiskMedium},
	{ID: "time-doctor", Name: "Time Doctor", Category: CategoryMonitoring, Description: "Employee productivity tracking and time management", CommonUses: []string{"Time tracking", "Distraction alerts", "Productivity reports"}, RiskLevel: RiskMedium},
	{ID: "activtrak", Name: "ActivTrak", Category: CategoryMonitoring, Description: "Workforce analytics and productivity management platform", CommonUses: []string{"Activity monitoring", "Productivity insights", "Compliance reporting"}, RiskLevel: RiskMedium},

	// Other
	{ID: "other", Name: "Other Tool", Category: CategoryOther, Description: "Other tool not listed", RiskLevel: RiskLow},
}

// toolLaws maps tool ids to the statutes the tool's function implicates on
// its own, independent of where the employer operates. Video-interview and
// assessment vendors trigger the interview/AEDT statutes directly; ATS and
// sourcing platforms trigger the AEDT rules.
var toolLaws = map[string][]string{
	"linkedin-recruiter": {"NYC LL144", "IL HB3773"},
	"hirevue":            {"IL AIVI Act", "NYC LL144", "MD HB1202"},
	"pymetrics":          {"NYC LL144", "CO AI Act"},
	"eightfold":          {"NYC LL144", "CO AI Act"},
	"greenhouse":         {"NYC LL144", "IL HB3773"},
	"lever":              {"NYC LL144", "IL HB3773"},
	"workday":            {"NYC LL144", "CO AI Act"},
	"textio":             {"IL HB3773"},
	"paradox-olivia":     {"NYC LL144"},
	"spark-hire":         {"IL AIVI Act", "MD HB1202"},
	"criteria":           {"NYC LL144", "CO AI Act"},
	"checkr":             {"FCRA", "NYC LL144"},
}

// ToolLaws returns the statutes a tool implicates regardless of jurisdiction
// selection. Nil for tools with no intrinsic obligations.
func ToolLaws(id string) []string {
	return toolLaws[id]
}

var toolsByID = func() map[string]ToolRecord {
	m := make(map[string]ToolRecord, len(tools))
	for _, t := range tools {
		m[t.ID] = t
	}
	return m
}()

// Tools returns the full tool directory in display order.
func Tools() []ToolRecord {
	return tools
}

// ToolByID looks up a tool by its slug.
func ToolByID(id string) (ToolRecord, bool) {
	t, ok := toolsByID[id]
	return t, ok
}

// ToolCategories lists all directory categories in display order.
func ToolCategories() []string {
	return []string{
		CategoryHiring, CategoryJobBoards, CategoryHRIS, CategoryCommunication,
		CategoryBackground, CategoryGeneralAI, CategoryCompensation,
		CategoryMonitoring, CategoryOther,
	}
}
