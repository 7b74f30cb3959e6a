package cli

import (
	"context"
	"fmt"

	"github.com/basket-cli/basket/internal/tui"
	"github.com/basket-cli/basket/internal/ui"
)

func (r *runner) dispatchSearch(a []string) int {
	if len(a) == 0 {
		return r.doSearchTUI()
	}
	if len(a) < 2 {
		ui.Fail("usage: basket search <users|groups> <query>")
		return 2
	}
	query := joinRest(a[1:])
	switch a[0] {
	case "users":
		return r.doSearchUsers(query)
	case "groups":
		return r.doSearchGroups(query)
	}
	ui.Fail("usage: basket search <users|groups> <query>")
	return 2
}

func (r *runner) doSearchTUI() int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	if err := tui.RunSearch(r.quiet, r.session.Token(), r.cfg.Search.Debounce); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func (r *runner) doSearchUsers(query string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	users, err := r.client.SearchUsers(context.Background(), r.session.Token(), query)
	if err != nil {
		return failRequest(err)
	}
	if r.opt.JSON {
		return printJSON(users)
	}
	if len(users) == 0 {
		fmt.Println(ui.MutedStyle.Render("no users found"))
		return 0
	}
	for _, u := range users {
		fmt.Printf("%s %s  %s\n",
			ui.AccentStyle.Render("•"),
			u.Name,
			ui.MutedStyle.Render("@"+u.Username+"  "+u.ID))
	}
	return 0
}

func (r *runner) doSearchGroups(query string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	groups, err := r.client.SearchGroups(context.Background(), r.session.Token(), query)
	if err != nil {
		return failRequest(err)
	}
	if r.opt.JSON {
		return printJSON(groups)
	}
	if len(groups) == 0 {
		fmt.Println(ui.MutedStyle.Render("no groups found"))
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
