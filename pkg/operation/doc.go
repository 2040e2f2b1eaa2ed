/*
Package operation runs a sync from a source directory into a destination
directory.

	+-------------+      +-------------+
	| FileIndex   |      | FileIndex   |
	|  (source)   |      | (dest)      |
	+------+------+      +------+------+
	       |                    |
	       +---------+----------+
	                 |
	          +------+------+
	          | DiffEngine  |
	          | (hashing)   |
	          +------+------+
	                 |
	          +------+------+
	          |    Plan     |
	          |  (preview)  |
	          +------+------+
	                 |
	          +------+------+
	          |    Gate     |
	          | (confirm)   |
	          +------+------+
	                 |
	          +------+------+
	          |  Executor   |
	          |  (copying)  |
	          +-------------+

🎯 Purpose:
- Overwrites destination files whose name exists in the source and whose content differs
- Never creates or deletes files

🔄 Flow:
1. Both trees are indexed concurrently by base name
2. Candidates are matched by name and filtered by content digest
3. The plan is printed as "source ==> destination" rows
4. The gate asks once; declining stops before any write
5. The executor copies with bounded concurrency and reports per file

⚡ Failure model:
- A file that cannot be hashed is skipped and reported in Outcome.Diff
- A file that cannot be copied is reported in Outcome.Report
- Only structural failures (an unreadable root, a cancelled context) make Sync return an error

🔍 Example:

	syncer, err := operation.NewSyncer(operation.Options{
		Store:  fs,
		Lister: fs,
		Gate:   &confirm.Gate{Prompt: confirm.TerminalPrompt{}},
		Config: cfg,
	})
	outcome, err := syncer.Sync(ctx, "vendor/lib", "internal/lib")
*/
package operation
