// Package analysis scores a finished coaching session. It gates on minimum
// participation, renders the reconciled transcript into a prompt, and issues
// exactly one structured-output request against a fixed JSON schema. Every
// failure mode of that request maps to a labeled fallback result so the
// session's transcript is never lost to a scoring hiccup.
package analysis
