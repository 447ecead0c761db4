// Package generator renders compliance documents from the static template
// table, persists them, and resolves matching remediation items.
package generator

// Template is one entry in the static document template table.
type Template struct {
	Title string
	// States lists the jurisdictions the document is typically required in.
	// Informational only; generation is never blocked by state.
	States []string
	Body   string
}

// RemediationKey maps a document type to the remediation item it resolves,
// empty when generating the type resolves nothing.
func RemediationKey(docType string) string {
	switch docType {
	case "disclosure-candidate", "disclosure-employee":
		return "disclosure"
	case "consent-form":
		return "consent"
	default:
		return ""
	}
}

// Templates returns the static template table keyed by document type.
func Templates() map[string]Template {
	return templates
}

// TemplateByType looks up a template by document type.
func TemplateByType(docType string) (Template, bool) {
	t, ok := templates[docType]
	return t, ok
}

var templates = map[string]Template{
	"disclosure-candidate": {
		Title:  "Candidate Disclosure Notice",
		States: []string{"IL", "CO", "CA", "NYC"},
		Body: `NOTICE OF AI USE IN HIRING

[COMPANY_NAME] uses artificial intelligence (AI) technology as part of our hiring and employment decision-making process.

WHAT THIS MEANS:
AI-powered tools may be used to analyze your application materials, including but not limited to:
• Resume screening and parsing
• Skills assessment evaluation
• Video interview analysis
• Background check processing

YOUR RIGHTS:
As a candidate, you have the right to:
1. Request information about how AI is used in our hiring process
2. Request an alternative selection process that does not rely solely on AI
3. Request a human review of any AI-generated decision

This notice is provided in compliance with [APPLICABLE_LAWS].

If you have questions about our use of AI in hiring, please contact [CONTACT_EMAIL].

Date: [DATE]
[COMPANY_NAME]`,
	},
	"disclosure-employee": {
		Title:  "Employee Disclosure Notice",
		States: []string{"IL", "CO", "CA"},
		Body: `EMPLOYEE NOTICE: AI IN EMPLOYMENT DECISIONS

Dear Employee,

[COMPANY_NAME] uses artificial intelligence (AI) systems that may factor into employment-related decisions. This notice informs you of this use in compliance with [APPLICABLE_LAWS].

AI SYSTEMS IN USE:
The following AI tools may influence employment decisions:
• Performance monitoring and evaluation tools
• Workforce planning and scheduling systems
• Training recommendation systems

TYPES OF DECISIONS:
AI may be used as a factor in decisions related to:
• Performance reviews
• Promotion considerations
• Work assignments
• Training recommendations

YOUR RIGHTS:
You have the right to:
1. Request information about AI systems that affect you
2. Request human review of significant AI-assisted decisions
3. Provide feedback on AI system impacts

CONTACT:
For questions, contact HR at [CONTACT_EMAIL].

Effective Date: [DATE]
[COMPANY_NAME]`,
	},
	"consent-form": {
		Title:  "Candidate Consent Form",
		States: []string{"CO", "CA"},
		Body: `AI PROCESSING CONSENT FORM

CANDIDATE INFORMATION:
Name: _________________________
Position Applied For: _________________________
Date: _________________________

CONSENT STATEMENT:
I, the undersigned, acknowledge that I have received and read the Notice of AI Use in Hiring from [COMPANY_NAME].

I understand that:
1. AI technology will be used to process my application
2. AI may analyze my resume, assessments, and interview responses
3. I may request human review of AI-assisted decisions
4. I may withdraw this consent at any time

By signing below, I consent to the use of AI technology in evaluating my application for employment.

☐ I CONSENT to AI processing of my application
☐ I DO NOT CONSENT and request an alternative process

Signature: _________________________
Date: _________________________

For internal use:
Received by: _________________________
Date: _________________________`,
	},
	"handbook-policy": {
		Title:  "Employee Handbook AI Policy",
		States: []string{"IL", "CO", "CA"},
		Body: `EMPLOYEE HANDBOOK SECTION: ARTIFICIAL INTELLIGENCE USE POLICY

1. PURPOSE
This policy establishes guidelines for [COMPANY_NAME]'s use of artificial intelligence (AI) and automated decision-making tools in employment-related matters.

2. SCOPE
This policy applies to all employees and covers the use of AI in:
• Hiring and recruitment
• Performance management
• Workforce planning
• Employee development

3. TRANSPARENCY
We are committed to transparency about AI use:
• Employees will be notified when AI influences decisions affecting them
• Information about AI systems is available upon request
• Regular reviews ensure AI systems function as intended

4. HUMAN OVERSIGHT
All significant employment decisions involving AI include:
• Human review before final decisions
• Appeal process for affected employees
• Regular audits of AI system outputs

5. FAIRNESS & NON-DISCRIMINATION
Our AI systems are:
• Regularly tested for bias
• Designed to promote equal opportunity
• Subject to independent audits as required by law

6. EMPLOYEE RIGHTS
Employees may:
• Request information about AI systems affecting them
• Request human review of AI-influenced decisions
• Report concerns about AI system impacts

7. COMPLIANCE
This policy complies with all applicable federal, state, and local laws.

8. CONTACT
Questions about this policy: [CONTACT_EMAIL]

Effective Date: [DATE]
Last Updated: [DATE]`,
	},
}
