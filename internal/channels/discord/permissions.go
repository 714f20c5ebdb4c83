package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// CanManageChannels reports whether the user holds Manage Channels (or
// Administrator) in the channel. DMs have no permission bits; the lone
// participant may manage their own scope.
func (c *Channel) CanManageChannels(guildID, channelID, userID string) bool {
	if guildID == "dm" {
		return true
	}
	return c.hasPermission(channelID, userID, discordgo.PermissionManageChannels|discordgo.PermissionAdministrator)
}

// IsAdmin reports whether the user holds Administrator in the channel.
func (c *Channel) IsAdmin(guildID, channelID, userID string) bool {
	if guildID == "dm" {
		return true
	}
	return c.hasPermission(channelID, userID, discordgo.PermissionAdministrator)
}

func (c *Channel) hasPermission(channelID, userID string, bits int64) bool {
	perms, err := c.session.UserChannelPermissions(userID, channelID)
	if err != nil {
		slog.Warn("discord permission lookup failed",
			"channel_id", channelID, "user_id", userID, "error", err)
		return false
	}
	return perms&bits != 0
}
