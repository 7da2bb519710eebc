// Package sheets provides a thin client for the Google Sheets API.
//
// The reconciliation pipeline uses three logical tables: the transcript
// tracking table, and the Meeting_data and Audit_and_Training tabs of the
// master spreadsheet. BatchWrite applies several ranges in one call so the
// two master tabs stay row-aligned; the call is treated as all-or-nothing.
package sheets
