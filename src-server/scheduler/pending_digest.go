package scheduler

import (
	"context"
	"famcal/src-server/model"
	"famcal/src-server/utils"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
)

// PendingDigest posts events still waiting for approval to the family
// channel, grouped by the user whose call it is (the non-creator). Each
// event is announced once; approval state changes are announced by the
// notifier, not here.
func PendingDigest(as *utils.AppState) {
	if as.DgSession == nil || as.Config.GetDiscordChannelID() == "" {
		slog.Info("Discord not configured, pending digest disabled")
		return
	}

	for {
		time.Sleep(time.Minute)

		eventModels := make([]model.Event, 0)
		if err := as.BunDB.
			NewSelect().
			Model(&eventModels).
			Relation("CreatedBy").
			Where("status = ?", model.StatusPending).
			Where("notification_sent = ?", false).
			Order("event.seq ASC").
			Scan(context.Background()); err != nil {
			slog.Error("can't get pending events", "error", err)
			continue
		}
		if len(eventModels) == 0 {
			continue
		}

		// with two users, whoever didn't create the event decides it
		approverToEventModels := make(map[string][]*model.Event)
		for i := range eventModels {
			event := &eventModels[i]
			for key, user := range model.Users {
				if key != event.CreatedByID {
					approverToEventModels[user.Name] = append(approverToEventModels[user.Name], event)
				}
			}
		}

		for approverName, pending := range approverToEventModels {
			if _, err := as.DgSession.ChannelMessageSendComplex(
				as.Config.GetDiscordChannelID(),
				&discordgo.MessageSend{
					Content: approverName + ", these proposals are waiting for you:",
					Embeds: func() []*discordgo.MessageEmbed {
						embeds := make([]*discordgo.MessageEmbed, len(pending))
						for i, event := range pending {
							embeds[i] = event.ToDiscordEmbed()
						}
						return embeds
					}(),
				},
			); err != nil {
				slog.Error("PendingDigest: can't send message", "error", err)
				continue
			}

			if _, err := as.BunDB.NewUpdate().
				Model((*model.Event)(nil)).
				Set("notification_sent = ?", true).
				Where("id IN (?)", bun.In(func() []string {
					ids := make([]string, len(pending))
					for i, event := range pending {
						ids[i] = event.ID
					}
					return ids
				}())).
				Exec(context.Background()); err != nil {
				slog.Error("PendingDigest: can't update notification_sent field", "error", err)
				continue
			}
		}
	}
}
