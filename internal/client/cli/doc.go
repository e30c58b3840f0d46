// Package cli provides the interactive taskkeeper command-line client.
//
// App drives a read-eval-print loop over the sync services: commands read
// from the local cache through watch streams and write through the remote
// API. A background Syncer keeps the signed-in user's workspaces and
// projects fresh while the loop runs.
//
// Commands take ids as arguments and prompt for free text:
//
//	register | login | logout | whoami | sync
//	ws | ws-add | ws-rename <id> | ws-rm <id>
//	members <ws> | member-add <ws> <user> <role> | member-role <ws> <user> <role> | member-rm <ws> <user>
//	projects <ws> | project-add <ws> | project-rm <id>
//	tasks <project> | task-add <project> | status <task> <status> | task-rm <id>
//	bookmark <task> | bookmarks | assign <task> <user> | unassign <task> <user> | mine
//	comments <task> | comment <task> | comment-rm <id>
//	tags | tag-add | tag-rm <id> | tag <task> <tag> | untag <task> <tag>
//	media <task> | upload <task> <path> | media-rm <id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
