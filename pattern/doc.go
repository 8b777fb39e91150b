/*
Package pattern compiles route specifiers into anchored regular expressions
plus the ordered list of parameters they capture.

A specifier is a path that may embed placeholders:

	Syntax          Type
	:name           named parameter, one or more non-slash characters
	:name?          optional named parameter (the leading slash is optional too)
	:name(\d+)      named parameter with a custom capture
	.:name          format parameter, stops at '/' and '.'
	*               wildcard, captures the rest positionally

Examples:

	Specifier: /user/:id?
	 /user            match: id absent
	 /user/7          match: id="7"
	 /user/7/         match: id="7" (trailing slash allowed unless Strict)

	Specifier: /files/*
	 /files/a/b/c     match: [0]="a/b/c"

Matching is case-insensitive unless Options.Sensitive is set.
*/
package pattern
