package cli

import (
	"context"
	"fmt"

	"github.com/basket-cli/basket/internal/tui"
	"github.com/basket-cli/basket/internal/ui"
)

func (r *runner) dispatchItems(a []string) int {
	if len(a) == 0 {
		ui.Fail("usage: basket items <groupID> | items <ls|add|rm> ...")
		return 2
	}
	switch a[0] {
	case "ls":
		if len(a) != 2 {
			ui.Fail("usage: basket items ls <groupID>")
			return 2
		}
		return r.doItemList(a[1])
	case "add":
		if len(a) < 3 {
			ui.Fail("usage: basket items add <groupID> <title...>")
			return 2
		}
		return r.doItemAdd(a[1], joinRest(a[2:]))
	case "rm":
		if len(a) != 3 {
			ui.Fail("usage: basket items rm <groupID> <itemID>")
			return 2
		}
		return r.doItemRemove(a[1], a[2])
	}
	// bare group id: interactive view
	if len(a) != 1 {
		ui.Fail("usage: basket items <groupID>")
		return 2
	}
	return r.doItemsTUI(a[0])
}

func (r *runner) doItemsTUI(groupID string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	group, err := r.client.GetGroup(context.Background(), r.session.Token(), groupID)
	if err != nil {
		return failRequest(err)
	}
	if err := tui.RunItems(r.quiet, r.session.Token(), *group); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func (r *runner) doItemList(groupID string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	items, err := r.client.GroupItems(context.Background(), r.session.Token(), groupID)
	if err != nil {
		return failRequest(err)
	}
	if r.opt.JSON {
		return printJSON(items)
	}
	if len(items) == 0 {
		fmt.Println(ui.MutedStyle.Render("list is empty"))
		return 0
	}
	for _, it := range items {
		fmt.Printf("%s %s  %s\n",
			ui.AccentStyle.Render("•"),
			it.Title,
			ui.MutedStyle.Render(it.ID))
	}
	return 0
}

func (r *runner) doItemAdd(groupID, title string) int {
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	it, err := r.client.CreateItem(context.Background(), r.session.Token(), groupID, title)
	if err != nil {
		return failRequest(err)
	}
	ui.Ok(fmt.Sprintf("added %q", it.Title))
	return 0
}

func (r *runner) doItemRemove(groupID, itemID string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	if err := r.client.DeleteItem(context.Background(), r.session.Token(), groupID, itemID); err != nil {
		return failRequest(err)
	}
	ui.Ok("removed")
	return 0
}
