// Package todo loads, validates, and saves the task list file.
//
// The task file (todos.json by default) is a JSON array of tasks in display
// order:
//
//	[
//	  {
//	    "title": "Buy milk",
//	    "completed": false
//	  }
//	]
//
// A task has no identity beyond its position in the array.
//
// # Validation
//
// Files are checked against a JSON Schema before decoding. The built-in
// schema requires every element to be an object with a string "title" and a
// boolean "completed"; a custom schema file can replace it. When no schema
// is available a minimal structural check with the same rules is used.
//
// # Recovery
//
// Store.Load never fails: a missing file yields an empty list, and an
// unreadable or invalid file also yields an empty list after logging a
// warning. Store.LoadStrict reports those conditions as errors.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Field order title, completed
//   - Write to a temporary file in the same directory, then rename
package todo
