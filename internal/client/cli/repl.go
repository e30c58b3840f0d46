package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// printlnFn is a test seam for REPL chrome output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs. App satisfies it; tests
// can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	exec(ctx context.Context, name string, args []string) (bool, error)
	commandNames(loggedIn bool) []string
}

// runREPL reads one command per line from reader and dispatches it until
// EOF, "exit" or "quit". Handler errors are reported by the handlers
// themselves, so the loop only keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("tk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands:", strings.Join(a.commandNames(a.isLoggedIn()), ", "), "exit")
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			if known, _ := a.exec(ctx, cmd, args); !known {
				printlnFn("Unknown command:", cmd)
			}
		}
	}
}

type command struct {
	usage string
	// args is the number of required arguments.
	args int
	// auth marks commands that need a signed-in user.
	auth bool
	run  func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register": {usage: "register", run: (*App).Register},
	"login":    {usage: "login", run: (*App).Login},
	"logout":   {usage: "logout", auth: true, run: (*App).Logout},
	"whoami":   {usage: "whoami", auth: true, run: (*App).WhoAmI},
	"sync":     {usage: "sync", auth: true, run: (*App).Sync},

	"ws":        {usage: "ws", auth: true, run: (*App).ListWorkspaces},
	"ws-add":    {usage: "ws-add", auth: true, run: (*App).AddWorkspace},
	"ws-rename": {usage: "ws-rename <id>", args: 1, auth: true, run: (*App).RenameWorkspace},
	"ws-rm":     {usage: "ws-rm <id>", args: 1, auth: true, run: (*App).DeleteWorkspace},

	"members":     {usage: "members <ws>", args: 1, auth: true, run: (*App).ListMembers},
	"member-add":  {usage: "member-add <ws> <user> <role>", args: 3, auth: true, run: (*App).AddMember},
	"member-role": {usage: "member-role <ws> <user> <role>", args: 3, auth: true, run: (*App).ChangeMemberRole},
	"member-rm":   {usage: "member-rm <ws> <user>", args: 2, auth: true, run: (*App).RemoveMember},

	"projects":    {usage: "projects <ws>", args: 1, auth: true, run: (*App).ListProjects},
	"project-add": {usage: "project-add <ws>", args: 1, auth: true, run: (*App).AddProject},
	"project-rm":  {usage: "project-rm <id>", args: 1, auth: true, run: (*App).DeleteProject},

	"tasks":     {usage: "tasks <project>", args: 1, auth: true, run: (*App).ListTasks},
	"task-add":  {usage: "task-add <project>", args: 1, auth: true, run: (*App).AddTask},
	"status":    {usage: "status <task> <pending|in_progress|done>", args: 2, auth: true, run: (*App).SetStatus},
	"task-rm":   {usage: "task-rm <id>", args: 1, auth: true, run: (*App).DeleteTask},
	"bookmark":  {usage: "bookmark <task>", args: 1, auth: true, run: (*App).Bookmark},
	"bookmarks": {usage: "bookmarks", auth: true, run: (*App).ListBookmarks},
	"assign":    {usage: "assign <task> <user>", args: 2, auth: true, run: (*App).Assign},
	"unassign":  {usage: "unassign <task> <user>", args: 2, auth: true, run: (*App).Unassign},
	"mine":      {usage: "mine", auth: true, run: (*App).ListMine},

	"comments":   {usage: "comments <task>", args: 1, auth: true, run: (*App).ListComments},
	"comment":    {usage: "comment <task>", args: 1, auth: true, run: (*App).AddComment},
	"comment-rm": {usage: "comment-rm <id>", args: 1, auth: true, run: (*App).DeleteComment},

	"tags":    {usage: "tags", auth: true, run: (*App).ListTags},
	"tag-add": {usage: "tag-add", auth: true, run: (*App).AddTag},
	"tag-rm":  {usage: "tag-rm <id>", args: 1, auth: true, run: (*App).DeleteTag},
	"tag":     {usage: "tag <task> <tag>", args: 2, auth: true, run: (*App).AttachTag},
	"untag":   {usage: "untag <task> <tag>", args: 2, auth: true, run: (*App).DetachTag},

	"media":    {usage: "media <task>", args: 1, auth: true, run: (*App).ListMedia},
	"upload":   {usage: "upload <task> <path>", args: 2, auth: true, run: (*App).Upload},
	"media-rm": {usage: "media-rm <id>", args: 1, auth: true, run: (*App).DeleteMedia},
}

func (a *App) exec(ctx context.Context, name string, args []string) (bool, error) {
	c, ok := commands[name]
	if !ok {
		return false, nil
	}
	if c.auth && !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return true, errNotLoggedIn
	}
	if len(args) < c.args {
		fmt.Fprintln(a.out, "Usage:", c.usage)
		return true, errUsage
	}
	err := c.run(a, ctx, args)
	if err != nil {
		a.log.Debug(ctx, "command failed", "command", name, "error", err)
	}
	return true, err
}

func (a *App) commandNames(loggedIn bool) []string {
	var names []string
	for name, c := range commands {
		if c.auth == loggedIn {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
