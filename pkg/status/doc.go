/*
Package status tracks and formats the per-file results of a sync run.

	            +-------------+
	            |   Tracker   |
	            | (progress)  |
	            +------+------+
	                   |
	      +------------+-----------+
	      |                        |
	+-----+------+          +------+-----+
	|  Results   |          | Formatter  |
	| (per file) |          |  (UI/UX)   |
	+------------+          +------------+

🎯 Purpose:
- Records the outcome of every copy as it completes
- Reports progress through zerolog while copies run concurrently
- Formats result lines, progress and the final summary

🔄 Flow:
1. The executor calls StartOperation with the plan size
2. Each finished copy is passed to Track
3. FinishOperation returns the Summary used for the last console line

🤝 Interfaces:
- FileFormatter: turns results into text (DefaultFileFormatter uses emoji)
- FormatFileOperation: aligned, coloured column line for the console logger

🔍 Example:

	tracker := status.NewTracker(zerolog.Ctx(ctx))
	tracker.StartOperation(ctx, plan.Len())
	tracker.Track(ctx, status.Result{Name: "a.txt", Status: status.StatusCopied, Size: 12})
	summary := tracker.FinishOperation(ctx)
*/
package status
