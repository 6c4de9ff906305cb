package permissions

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestEvaluateWarn(t *testing.T) {
	base := Check{
		ActorID:          "actor",
		TargetID:         "target",
		BotID:            "bot",
		OwnerID:          "owner",
		ActorPermissions: discordgo.PermissionKickMembers,
		ActorTopRole:     5,
		TargetTopRole:    2,
		TargetIsMember:   true,
		Action:           ActionWarn,
	}

	tests := []struct {
		name    string
		mutate  func(c Check) Check
		allowed bool
		code    string
		message string
	}{
		{
			name:    "moderator above target",
			mutate:  func(c Check) Check { return c },
			allowed: true,
		},
		{
			name: "self warn",
			mutate: func(c Check) Check {
				c.TargetID = c.ActorID
				return c
			},
			code:    CodeSelfAction,
			message: "You cannot warn yourself.",
		},
		{
			name: "bot as target",
			mutate: func(c Check) Check {
				c.TargetID = c.BotID
				return c
			},
			code: CodeBotTarget,
		},
		{
			name: "no moderation permission",
			mutate: func(c Check) Check {
				c.ActorPermissions = discordgo.PermissionSendMessages
				return c
			},
			code:    CodePermission,
			message: "You don't have permission to warn members.",
		},
		{
			name: "equal top role",
			mutate: func(c Check) Check {
				c.TargetTopRole = c.ActorTopRole
				return c
			},
			code:    CodeHierarchy,
			message: "You cannot warn someone with a higher or equal role.",
		},
		{
			name: "higher target role",
			mutate: func(c Check) Check {
				c.TargetTopRole = c.ActorTopRole + 1
				return c
			},
			code: CodeHierarchy,
		},
		{
			name: "owner bypasses hierarchy",
			mutate: func(c Check) Check {
				c.ActorID = c.OwnerID
				c.ActorPermissions = 0
				c.TargetTopRole = 10
				return c
			},
			allowed: true,
		},
		{
			name: "administrator counts as moderator",
			mutate: func(c Check) Check {
				c.ActorPermissions = discordgo.PermissionAdministrator
				return c
			},
			allowed: true,
		},
		{
			name: "hierarchy skipped for non-members",
			mutate: func(c Check) Check {
				c.TargetIsMember = false
				c.TargetTopRole = 0
				c.ActorTopRole = 0
				return c
			},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.mutate(base))
			if res.Allowed != tt.allowed {
				t.Fatalf("Evaluate() allowed = %t, want %t (%+v)", res.Allowed, tt.allowed, res)
			}
			if tt.code != "" && res.Code != tt.code {
				t.Errorf("Evaluate() code = %q, want %q", res.Code, tt.code)
			}
			if tt.message != "" && res.Message != tt.message {
				t.Errorf("Evaluate() message = %q, want %q", res.Message, tt.message)
			}
		})
	}
}

func TestEvaluateListWarnings(t *testing.T) {
	base := Check{
		ActorID:  "actor",
		TargetID: "target",
		OwnerID:  "owner",
		Action:   ActionListWarnings,
	}

	// Anyone may look at their own warnings
	self := base
	self.TargetID = self.ActorID
	if res := Evaluate(self); !res.Allowed {
		t.Errorf("self lookup denied: %+v", res)
	}

	// Plain members may not look at others
	if res := Evaluate(base); res.Allowed {
		t.Error("non-moderator allowed to view another member's warnings")
	}

	// Moderators may
	mod := base
	mod.ActorPermissions = discordgo.PermissionManageMessages
	if res := Evaluate(mod); !res.Allowed {
		t.Errorf("moderator lookup denied: %+v", res)
	}

	// So may the owner
	owner := base
	owner.ActorID = owner.OwnerID
	if res := Evaluate(owner); !res.Allowed {
		t.Errorf("owner lookup denied: %+v", res)
	}
}

func TestRequiredBitsPerAction(t *testing.T) {
	tests := []struct {
		action Action
		perms  int64
		want   bool
	}{
		{ActionBan, discordgo.PermissionBanMembers, true},
		{ActionBan, discordgo.PermissionKickMembers, false},
		{ActionKick, discordgo.PermissionKickMembers, true},
		{ActionMute, discordgo.PermissionModerateMembers, true},
		{ActionSlowmode, discordgo.PermissionManageChannels, true},
		{ActionSlowmode, discordgo.PermissionBanMembers, false},
		{ActionWarn, discordgo.PermissionManageMessages, true},
	}

	for _, tt := range tests {
		c := Check{
			ActorID:          "actor",
			TargetID:         "target",
			OwnerID:          "owner",
			ActorPermissions: tt.perms,
			ActorTopRole:     5,
			TargetIsMember:   true,
			TargetTopRole:    1,
			Action:           tt.action,
		}
		res := Evaluate(c)
		if res.Allowed != tt.want {
			t.Errorf("action %v with perms %d: allowed = %t, want %t", tt.action, tt.perms, res.Allowed, tt.want)
		}
	}
}

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "g1",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "g1", Position: 0, Permissions: discordgo.PermissionSendMessages}, // @everyone
			{ID: "r-mod", Position: 5, Permissions: discordgo.PermissionKickMembers},
			{ID: "r-high", Position: 9},
		},
	}
}

func TestMemberPermissions(t *testing.T) {
	guild := testGuild()

	member := &discordgo.Member{
		User:  &discordgo.User{ID: "u1"},
		Roles: []string{"r-mod"},
	}

	perms := MemberPermissions(guild, member)
	if perms&discordgo.PermissionKickMembers == 0 {
		t.Error("role permission not folded in")
	}
	if perms&discordgo.PermissionSendMessages == 0 {
		t.Error("everyone permission not folded in")
	}

	ownerMember := &discordgo.Member{User: &discordgo.User{ID: "owner"}}
	if MemberPermissions(guild, ownerMember) != discordgo.PermissionAll {
		t.Error("owner does not get full permissions")
	}
}

func TestTopRolePosition(t *testing.T) {
	guild := testGuild()

	member := &discordgo.Member{
		User:  &discordgo.User{ID: "u1"},
		Roles: []string{"r-mod", "r-high"},
	}
	if got := TopRolePosition(guild, member); got != 9 {
		t.Errorf("TopRolePosition() = %d, want 9", got)
	}

	roleless := &discordgo.Member{User: &discordgo.User{ID: "u2"}}
	if got := TopRolePosition(guild, roleless); got != 0 {
		t.Errorf("TopRolePosition() roleless = %d, want 0", got)
	}
}

func TestBuildCheck(t *testing.T) {
	guild := testGuild()
	actor := &discordgo.Member{
		User:  &discordgo.User{ID: "actor"},
		Roles: []string{"r-mod"},
	}
	target := &discordgo.Member{
		User:  &discordgo.User{ID: "target"},
		Roles: []string{},
	}

	c := BuildCheck(guild, actor, target, "target", "bot", ActionWarn)
	if c.ActorID != "actor" || c.TargetID != "target" || c.BotID != "bot" {
		t.Errorf("ids wrong: %+v", c)
	}
	if c.OwnerID != "owner" {
		t.Errorf("owner id = %q, want %q", c.OwnerID, "owner")
	}
	if !c.TargetIsMember {
		t.Error("target member not marked as member")
	}
	if c.ActorTopRole != 5 {
		t.Errorf("actor top role = %d, want 5", c.ActorTopRole)
	}

	if res := Evaluate(c); !res.Allowed {
		t.Errorf("expected allow, got %+v", res)
	}

	// Target gone from the guild: hierarchy no longer applies
	gone := BuildCheck(guild, actor, nil, "target", "bot", ActionBan)
	if gone.TargetIsMember {
		t.Error("nil member marked as member")
	}
}

func TestIsModerator(t *testing.T) {
	guild := testGuild()

	mod := &discordgo.Member{User: &discordgo.User{ID: "u1"}, Roles: []string{"r-mod"}}
	if !IsModerator(guild, mod) {
		t.Error("kick permission not treated as moderator")
	}

	plain := &discordgo.Member{User: &discordgo.User{ID: "u2"}}
	if IsModerator(guild, plain) {
		t.Error("plain member treated as moderator")
	}

	owner := &discordgo.Member{User: &discordgo.User{ID: "owner"}}
	if !IsModerator(guild, owner) {
		t.Error("owner not treated as moderator")
	}
}
