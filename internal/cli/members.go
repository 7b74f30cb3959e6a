package cli

import (
	"context"

	"github.com/basket-cli/basket/internal/ui"
)

func (r *runner) dispatchMembers(a []string) int {
	if len(a) != 3 {
		ui.Fail("usage: basket members <add|rm> <groupID> <userID>")
		return 2
	}
	switch a[0] {
	case "add":
		return r.doMemberAdd(a[1], a[2])
	case "rm":
		return r.doMemberRemove(a[1], a[2])
	}
	ui.Fail("usage: basket members <add|rm> <groupID> <userID>")
	return 2
}

func (r *runner) doMemberAdd(groupID, userID string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	if err := r.client.AddMember(context.Background(), r.session.Token(), groupID, userID); err != nil {
		return failRequest(err)
	}
	ui.Ok("member added")
	return 0
}

func (r *runner) doMemberRemove(groupID, userID string) int {
	if _, code := r.requireAuth(); code != 0 {
		return code
	}
	if err := r.client.RemoveMember(context.Background(), r.session.Token(), groupID, userID); err != nil {
		return failRequest(err)
	}
	ui.Ok("member removed")
	return 0
}
