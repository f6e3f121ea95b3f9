/*
Package status records what happened to every file of an import run.

	            +-------------+
	            |   Report    |
	            |  (per run)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+------+          +-----+-----+
	| FileResult |          |  Summary  |
	| (per file) |          |   rows    |
	+------------+          +-----------+

🎯 Purpose:
- Gives each file one terminal Outcome: SUCCESS, SKIPPED or FAILED
- Keeps results in processing order for the end-of-run summary
- Renders results as aligned colored rows and a one-line summary

⚡ Key Responsibilities:
- Outcome bookkeeping (counts, deletions, duration)
- Carrying per-file warnings that did not change the outcome
- Formatting, never printing; the log package owns the console

🔍 Example:

	report := status.NewReport(sessionID, dir, false)
	report.Add(status.FileResult{Path: p, FinalPath: p, Outcome: status.OutcomeSuccess, DocumentID: "12"})
	report.Finish()

	fmt.Println(status.FormatSummary(report))
*/
package status
