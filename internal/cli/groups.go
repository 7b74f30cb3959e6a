package cli

import (
	"context"
	"fmt"

	"github.com/basket-cli/basket/internal/ui"
)

func (r *runner) dispatchGroups(a []string) int {
	if len(a) == 0 {
		ui.Fail("usage: basket groups <ls|create|show|rm|join|leave>")
		return 2
	}
	switch a[0] {
	case "ls":
		return r.doGroupList()
	case "create":
		if len(a) < 2 || len(a) > 3 {
			ui.Fail("usage: basket groups create <name> [password]")
			return 2
		}
		password := ""
		if len(a) == 3 {
			password = a[2]
		}
		return r.doGroupCreate(a[1], password)
	case "show":
		if len(a) != 2 {
			ui.Fail("usage: basket groups show <id>")
			return 2
		}
		return r.doGroupShow(a[1])
	case "rm":
		if len(a) != 2 {
			ui.Fail("usage: basket groups rm <id>")
			return 2
		}
		return r.doGroupDelete(a[1])
	case "join":
		if len(a) < 2 || len(a) > 3 {
			ui.Fail("usage: basket groups join <id> [password]")
			return 2
		}
		password := ""
		if len(a) == 3 {
			password = a[2]
		}
		return r.doGroupJoin(a[1], password)
	case "leave":
		if len(a) != 2 {
			ui.Fail("usage: basket groups leave <id>")
			return 2
		}
		return r.doGroupLeave(a[1])
	}
	ui.Fail("usage: basket groups <ls|create|show|rm|join|leave>")
	return 2
}

func (r *runner) doGroupList() int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	groups, err := r.client.MyGroups(context.Background(), r.session.Token())
	if err != nil {
		return failRequest(err)
	}
	if r.opt.JSON {
		return printJSON(groups)
	}
	if len(groups) == 0 {
		fmt.Println(ui.MutedStyle.Render("no groups yet. Run: basket groups create <name>"))
		return 0
	}
	for _, g := range groups {
		fmt.Printf("%s %s  %s\n",
			ui.AccentStyle.Render("•"),
			g.Name,
			ui.MutedStyle.Render(fmt.Sprintf("%s  %d members", g.ID, len(g.Members))))
	}
	return 0
}

func (r *runner) doGroupCreate(name, password string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	g, err := r.client.CreateGroup(context.Background(), r.session.Token(), name, password)
	if err != nil {
		return failRequest(err)
	}
	ui.Ok(fmt.Sprintf("created %q (%s)", g.Name, g.ID))
	return 0
}

func (r *runner) doGroupShow(groupID string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	g, err := r.client.GetGroup(context.Background(), r.session.Token(), groupID)
	if err != nil {
		return failRequest(err)
	}
	if r.opt.JSON {
		return printJSON(g)
	}
	lines := []string{
		ui.TitleStyle.Render(g.Name),
		"id: " + g.ID,
		"owner: " + g.Owner.Name,
		"created: " + g.CreatedAt.Format("2006-01-02"),
		"",
		ui.AccentStyle.Render(fmt.Sprintf("Members (%d)", len(g.Members))),
	}
	for _, u := range g.Members {
		lines = append(lines, fmt.Sprintf("  %s %s", u.Name, ui.MutedStyle.Render("@"+u.Username)))
	}
	ui.Panel(lines)
	return 0
}

func (r *runner) doGroupDelete(groupID string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	if err := r.client.DeleteGroup(context.Background(), r.session.Token(), groupID); err != nil {
		return failRequest(err)
	}
	ui.Ok("group deleted")
	return 0
}

func (r *runner) doGroupJoin(groupID, password string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	if err := r.client.JoinGroup(context.Background(), r.session.Token(), groupID, password); err != nil {
		return failRequest(err)
	}
	ui.Ok("joined")
	return 0
}

func (r *runner) doGroupLeave(groupID string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	if err := r.client.LeaveGroup(context.Background(), r.session.Token(), groupID); err != nil {
		return failRequest(err)
	}
	ui.Ok("left group")
	return 0
}
