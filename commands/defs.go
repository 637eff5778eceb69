package commands

import "github.com/bwmarrin/discordgo"

var GuildSetting = &discordgo.ApplicationCommand{
	Name:        "guild-setting",
	Description: "Set a guild settings property",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "property",
			Description:  "The settings property to change",
			Required:     true,
			Autocomplete: true,
		},
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "value",
			Description:  "The new value (channel, role, message ID or seconds)",
			Required:     true,
			Autocomplete: true,
		},
	},
}

var ShowSettings = &discordgo.ApplicationCommand{
	Name:        "show-settings",
	Description: "Show the current guild settings",
}

var AddInfraction = &discordgo.ApplicationCommand{
	Name:        "add-infraction",
	Description: "Record an infraction for a user",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user receiving the infraction",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "The reason for the infraction",
			Required:    true,
		},
	},
}

var RemoveInfraction = &discordgo.ApplicationCommand{
	Name:        "remove-infraction",
	Description: "Remove an infraction by ID",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user whose infraction is removed",
			Required:    true,
		},
		{
			Type:         discordgo.ApplicationCommandOptionInteger,
			Name:         "infraction",
			Description:  "The infraction to remove",
			Required:     true,
			Autocomplete: true,
		},
	},
}

var ListInfractions = &discordgo.ApplicationCommand{
	Name:        "list-infractions",
	Description: "List a user's infractions",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to list infractions for",
			Required:    true,
		},
	},
}

var RoleEmbed = &discordgo.ApplicationCommand{
	Name:        "role-embed",
	Description: "Post a role-selection embed with buttons",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "title",
			Description: "The embed title",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "field_body",
			Description: "Explanation shown in the embed",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role1",
			Description: "First selectable role",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role2",
			Description: "Second selectable role",
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role3",
			Description: "Third selectable role",
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role4",
			Description: "Fourth selectable role",
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role5",
			Description: "Fifth selectable role",
		},
		{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel",
			Description: "Channel to post in (defaults to the current channel)",
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
	},
}

var AddButton = &discordgo.ApplicationCommand{
	Name:        "add-button",
	Description: "Add a role button to an existing role embed",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionInteger,
			Name:         "role_embed",
			Description:  "The role embed to add the button to",
			Required:     true,
			Autocomplete: true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role",
			Description: "The role the button grants",
			Required:    true,
		},
	},
}

var RemoveButton = &discordgo.ApplicationCommand{
	Name:        "remove-button",
	Description: "Remove a role button from an existing role embed",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionInteger,
			Name:         "role_embed",
			Description:  "The role embed to remove the button from",
			Required:     true,
			Autocomplete: true,
		},
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "button",
			Description:  "The button to remove",
			Required:     true,
			Autocomplete: true,
		},
	},
}

var Verify = &discordgo.ApplicationCommand{
	Name:        "verify",
	Description: "Mark the member being verified in this channel as verified",
}

var Prefix = &discordgo.ApplicationCommand{
	Name:        "prefix",
	Description: "Manage command prefixes for this guild",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "add",
			Description: "Add a prefix",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prefix",
					Description: "The prefix to add",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "delete",
			Description: "Delete a prefix",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prefix",
					Description: "The prefix to delete",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "clear",
			Description: "Remove all prefixes for this guild",
		},
	},
}

var About = &discordgo.ApplicationCommand{
	Name:        "about",
	Description: "Show bot and system information",
}

// All is the full command set registered on startup.
var All = []*discordgo.ApplicationCommand{
	GuildSetting,
	ShowSettings,
	AddInfraction,
	RemoveInfraction,
	ListInfractions,
	RoleEmbed,
	AddButton,
	RemoveButton,
	Verify,
	Prefix,
	About,
}
