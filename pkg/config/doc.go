/*
Package config manages configuration parsing and validation for copywrite.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |   HCL   |  |  JSON   |
	|  Parser  |  | Parser  |  | Parser  |
	+----------+  +---------+  +---------+

🎯 Purpose:
- Loads the optional .copywrite.{yaml,yml,hcl,json} file
- Fills defaults and validates values
- Converts settings into index options

🔄 Flow:
1. Discover looks for a config file in the working directory
2. GetParser picks a parser by extension
3. The parser decodes on top of Default() and calls Validate
4. Command-line flags override the loaded values

📝 Fields:

	recursive     descend into subdirectories (default true)
	concurrency   bound on concurrent hashing and copying (default 8)
	collision     "last-wins" or "error" for duplicate names in one tree
	ignore        doublestar patterns excluded from both trees
	executable    doublestar patterns whose copies get execute bits
	assume_yes    skip the confirmation question
	show_orphans  print names that exist on one side only

🔍 Example:

	recursive   = true
	concurrency = 4
	ignore      = ["*.tmp", "node_modules/**"]
	executable  = ["bin/*.js"]
*/
package config
