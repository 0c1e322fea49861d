// Package notify posts household-calendar activity to a Discord channel.
// The whole package is optional: with no session configured every call is
// a no-op, and a failed send only logs, never fails the caller.
package notify

import (
	"famcal/src-server/model"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

type Notifier struct {
	session   *discordgo.Session
	channelID string
}

func New(session *discordgo.Session, channelID string) *Notifier {
	return &Notifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.session != nil && n.channelID != ""
}

// EventProposed announces a new PENDING event so the other user knows
// there is something to approve.
func (n *Notifier) EventProposed(event *model.Event) {
	if !n.Enabled() {
		return
	}
	embed := event.ToDiscordEmbed()
	embed.Description = event.CreatorName() + " proposed a new event."
	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
		slog.Error("can't send proposal notification", "event", event.ID, "error", err)
	}
}

// EventDecided announces an approval or rejection, labelled with the user
// who made the call.
func (n *Notifier) EventDecided(event *model.Event, decidedBy model.User) {
	if !n.Enabled() {
		return
	}
	embed := event.ToDiscordEmbed()
	switch event.Status {
	case model.StatusApproved:
		embed.Description = decidedBy.Name + " approved this event."
	case model.StatusRejected:
		embed.Description = decidedBy.Name + " rejected this event."
	}
	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
		slog.Error("can't send decision notification", "event", event.ID, "error", err)
	}
}
