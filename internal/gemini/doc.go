// Package gemini provides the analysis adapter over the Gemini
// generateContent API.
//
// The prompt template comes from the Prompts spreadsheet and is rendered with
// the transcript text and the optional pre-meeting brief. The model is asked
// for JSON output and the response is strictly decoded and validated into an
// AnalysisResult; anything that does not satisfy the schema is rejected as a
// SchemaError, never returned partially populated.
package gemini
