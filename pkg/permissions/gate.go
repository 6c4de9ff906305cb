// Package permissions decides whether a member may run a moderation action
// against another member. The gate itself is a pure function over a Check
// value; helpers build that value from discordgo state.
package permissions

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Action is the kind of moderation action being gated
type Action int

const (
	ActionWarn Action = iota
	ActionUnwarn
	ActionClearWarnings
	ActionListWarnings
	ActionBan
	ActionKick
	ActionMute
	ActionUnban
	ActionSlowmode
)

// Verb returns the verb used in user-facing denial messages
func (a Action) Verb() string {
	switch a {
	case ActionWarn:
		return "warn"
	case ActionUnwarn:
		return "unwarn"
	case ActionClearWarnings:
		return "clear warnings for"
	case ActionListWarnings:
		return "view warnings of"
	case ActionBan:
		return "ban"
	case ActionKick:
		return "kick"
	case ActionMute:
		return "mute"
	case ActionUnban:
		return "unban"
	case ActionSlowmode:
		return "manage"
	default:
		return "moderate"
	}
}

// moderationBits are the permission bits that qualify a member as a
// moderator for warning actions
const moderationBits = discordgo.PermissionBanMembers |
	discordgo.PermissionKickMembers |
	discordgo.PermissionManageMessages |
	discordgo.PermissionManageRoles

// requiredBits returns the permission bits accepted for an action (any one
// of them suffices); administrator always qualifies
func requiredBits(a Action) int64 {
	switch a {
	case ActionBan, ActionUnban:
		return discordgo.PermissionBanMembers
	case ActionKick:
		return discordgo.PermissionKickMembers
	case ActionMute:
		return discordgo.PermissionManageRoles | discordgo.PermissionModerateMembers
	case ActionSlowmode:
		return discordgo.PermissionManageChannels | discordgo.PermissionManageMessages
	default:
		// warn, unwarn, clearwarnings, warnings
		return moderationBits
	}
}

// Denial reason codes
const (
	CodeSelfAction = "self_action"
	CodeBotTarget  = "bot_target"
	CodePermission = "permission"
	CodeHierarchy  = "hierarchy"
)

// Check is the full input to the gate. Build one with BuildCheck or fill it
// by hand in tests.
type Check struct {
	ActorID          string
	TargetID         string
	BotID            string
	OwnerID          string
	ActorPermissions int64
	ActorTopRole     int
	TargetTopRole    int
	TargetIsMember   bool
	Action           Action
}

// Result is the gate's verdict
type Result struct {
	Allowed bool
	Code    string
	Message string
}

// Allow is the permitted result
var Allow = Result{Allowed: true}

// Deny builds a denied result
func Deny(code, message string) Result {
	return Result{Allowed: false, Code: code, Message: message}
}

// Evaluate runs the gate rules in order; the first matching rule wins.
func Evaluate(c Check) Result {
	// The read path has its own shape: self lookups are always fine
	if c.Action == ActionListWarnings {
		if c.ActorID == c.TargetID {
			return Allow
		}
		if c.ActorID == c.OwnerID || hasPermission(c.ActorPermissions, requiredBits(c.Action)) {
			return Allow
		}
		return Deny(CodePermission, "You don't have permission to view another member's warnings.")
	}

	if c.ActorID == c.TargetID {
		return Deny(CodeSelfAction, fmt.Sprintf("You cannot %s yourself.", c.Action.Verb()))
	}

	if c.TargetID != "" && c.TargetID == c.BotID {
		return Deny(CodeBotTarget, fmt.Sprintf("You cannot %s me.", c.Action.Verb()))
	}

	// The guild owner outranks every rule below
	if c.ActorID == c.OwnerID {
		return Allow
	}

	if !hasPermission(c.ActorPermissions, requiredBits(c.Action)) {
		return Deny(CodePermission, fmt.Sprintf("You don't have permission to %s members.", c.Action.Verb()))
	}

	// Hierarchy only applies between two members of the guild
	if c.TargetIsMember && c.ActorTopRole <= c.TargetTopRole {
		return Deny(CodeHierarchy, fmt.Sprintf("You cannot %s someone with a higher or equal role.", c.Action.Verb()))
	}

	return Allow
}

// hasPermission reports whether perms carries administrator or any of the
// wanted bits
func hasPermission(perms int64, wanted int64) bool {
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&wanted != 0
}

// BuildCheck assembles a Check from discordgo guild state. targetMember may
// be nil when the target is not (or no longer) a guild member; the hierarchy
// rule is skipped for those targets.
func BuildCheck(guild *discordgo.Guild, actor *discordgo.Member, targetMember *discordgo.Member, targetID, botID string, action Action) Check {
	c := Check{
		TargetID: targetID,
		BotID:    botID,
		Action:   action,
	}
	if guild != nil {
		c.OwnerID = guild.OwnerID
	}
	if actor != nil && actor.User != nil {
		c.ActorID = actor.User.ID
		c.ActorPermissions = MemberPermissions(guild, actor)
		c.ActorTopRole = TopRolePosition(guild, actor)
	}
	if targetMember != nil {
		c.TargetIsMember = true
		c.TargetTopRole = TopRolePosition(guild, targetMember)
	}
	return c
}

// MemberPermissions computes a member's guild-level permissions by folding
// their role permissions together. The guild owner gets everything.
func MemberPermissions(guild *discordgo.Guild, member *discordgo.Member) int64 {
	if guild == nil || member == nil || member.User == nil {
		return 0
	}
	if member.User.ID == guild.OwnerID {
		return discordgo.PermissionAll
	}

	var perms int64
	for _, role := range guild.Roles {
		// @everyone applies to everybody
		if role.ID == guild.ID {
			perms |= role.Permissions
			continue
		}
		for _, rid := range member.Roles {
			if role.ID == rid {
				perms |= role.Permissions
				break
			}
		}
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}
	return perms
}

// IsModerator reports whether a member carries any warning-moderation bit
// (or is the guild owner / an administrator)
func IsModerator(guild *discordgo.Guild, member *discordgo.Member) bool {
	if guild == nil || member == nil {
		return false
	}
	if member.User != nil && member.User.ID == guild.OwnerID {
		return true
	}
	return hasPermission(MemberPermissions(guild, member), moderationBits)
}

// TopRolePosition returns the highest role position a member holds; 0 is the
// everyone baseline
func TopRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	if guild == nil || member == nil {
		return 0
	}
	top := 0
	for _, role := range guild.Roles {
		for _, rid := range member.Roles {
			if role.ID == rid && role.Position > top {
				top = role.Position
			}
		}
	}
	return top
}
