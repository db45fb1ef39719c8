package tailor

import (
	"fmt"
	"strings"
)

// ChangelogDelimiter separates resume text from the change summary in a
// refinement response. The refine prompt demands it verbatim, and the
// streaming path withholds it (and everything after it) from chunk
// callbacks.
const ChangelogDelimiter = "---CHANGELOG---"

// formattingRules is embedded in every generation prompt so output matches
// the plain-text shape the normalizer expects.
const formattingRules = `MANDATORY FORMATTING RULES:
- Output plain text only. No markdown of any kind.
- Never wrap text in asterisks or underscores for emphasis.
- Never start list items with bullet characters (*, -) or numbered markers.
- Indent every list item with exactly two leading spaces.
- Separate sections with a single blank line.`

// noFabricationDirective is the primary directive for generation and
// refinement prompts.
const noFabricationDirective = `PRIMARY DIRECTIVE: Use ONLY facts, employers, dates, skills, and metrics present in the provided material. Never invent, extrapolate, or embellish experience the candidate does not have.`

// factualIntegrityDirective is the primary directive for tone changes.
const factualIntegrityDirective = `PRIMARY DIRECTIVE: Preserve every fact, employer, date, metric, and the overall section structure exactly. Change only the wording and style.`

// toneGuidance describes how each selectable tone should read.
func toneGuidance(tone Tone) (guidance string) {
	switch tone {
	case ToneConfident:
		guidance = `Rewrite in a CONFIDENT tone: assured, direct statements of capability and impact. Lead with strong action verbs. No hedging language ("helped with", "assisted", "was involved in").`
	case ToneExpert:
		guidance = `Rewrite in an EXPERT tone: authoritative, measured, senior. Emphasize judgment, architecture-level decisions, and depth of domain mastery. Avoid exclamatory or eager phrasing.`
	default:
		guidance = `Write in an EAGER tone: enthusiastic, motivated, and energetic while staying professional.`
	}
	return guidance
}

// buildDraftPrompt assembles the initial-draft prompt from every source
// resume and the target job description.
func buildDraftPrompt(resumeTexts []string, jobDescription string) (prompt string) {
	var resumes strings.Builder
	for i, text := range resumeTexts {
		resumes.WriteString(fmt.Sprintf("--- RESUME %d START ---\n%s\n--- RESUME %d END ---\n\n", i+1, text, i+1))
	}

	prompt = fmt.Sprintf(`You are an expert resume writer tailoring a candidate's resume to a specific job.

%s

%s

SOURCE RESUMES:
%s
--- JOB DESCRIPTION START ---
%s
--- JOB DESCRIPTION END ---

Merge the source resumes into ONE tailored resume for this job:
1. Select the experience and skills most relevant to the job description.
2. Order employment history most recent first, keeping every role.
3. %s
4. Return ONLY the resume text. No commentary, no preamble, no closing remarks.`,
		noFabricationDirective, formattingRules, resumes.String(),
		jobDescription, toneGuidance(ToneEager))

	return prompt
}

// buildTonePrompt assembles the tone-change prompt for an existing draft.
func buildTonePrompt(baseText string, tone Tone) (prompt string) {
	prompt = fmt.Sprintf(`You are an expert resume editor adjusting the tone of a finished resume.

%s

%s

%s

--- RESUME START ---
%s
--- RESUME END ---

Return ONLY the rewritten resume text. No commentary.`,
		factualIntegrityDirective, formattingRules, toneGuidance(tone), baseText)

	return prompt
}

// buildRefinePrompt assembles the refinement prompt, embedding the user's
// feedback and any retrieved best-practices advice, and demanding the
// two-part body/changelog output.
func buildRefinePrompt(draftText, feedback string, tone Tone, practicesText string) (prompt string) {
	practicesSection := ""
	if practicesText != "" {
		practicesSection = fmt.Sprintf(`--- BEST PRACTICES START ---
%s
--- BEST PRACTICES END ---

Apply these best practices where they improve the resume, but the user's feedback takes priority on any conflict.

`, practicesText)
	}

	prompt = fmt.Sprintf(`You are an expert resume editor revising a resume draft based on user feedback.

%s

%s

Keep the current tone: %s

--- CURRENT RESUME START ---
%s
--- CURRENT RESUME END ---

--- USER FEEDBACK START ---
%s
--- USER FEEDBACK END ---

%sOUTPUT CONTRACT (STRICT):
1. First, the full revised resume text.
2. Then a line containing exactly: %s
3. Then a short summary of what changed, one change per line, plain sentences, no bullet characters.
Return nothing else.`,
		noFabricationDirective, formattingRules, toneGuidance(tone),
		draftText, feedback, practicesSection, ChangelogDelimiter)

	return prompt
}

// buildPreprocessPrompt assembles the cleanup prompt for raw pasted input.
func buildPreprocessPrompt(text string, kind ContentKind) (prompt string) {
	prompt = fmt.Sprintf(`You are a text preprocessor preparing a %s for use in resume tailoring.

Extract the decision-relevant content and remove boilerplate: navigation text, legal disclaimers, equal-opportunity statements, application instructions, repeated headers and footers.

--- INPUT START ---
%s
--- INPUT END ---

Return ONLY the cleaned text. Do not summarize, rephrase, or add commentary.`,
		kind, text)

	return prompt
}

// bestPracticesPrompt is the fixed advisory prompt for the grounded
// best-practices fetch.
const bestPracticesPrompt = `Using current reputable sources, summarize today's most widely accepted resume writing best practices: structure, length, phrasing of accomplishments, quantification of impact, keyword use for applicant tracking systems, and common mistakes to avoid. Be concise and practical.`
