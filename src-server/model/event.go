package model

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string `bun:"id,pk"`         // required
	Title       string `bun:"title,notnull"` // required
	Description string `bun:"description"`
	Location    string `bun:"location"`

	StartDateUnixUTC int64 `bun:"start_date,notnull"` // required
	EndDateUnixUTC   int64 `bun:"end_date,notnull"`   // required
	AllDay           bool  `bun:"all_day"`

	// free-text tag ("Family", "Dalton/Karsen", ...); display/filter only
	ParticipantsCategory string `bun:"participants_category"`

	CreatedByID string      `bun:"created_by_id,notnull"` // required
	Status      EventStatus `bun:"status,notnull"`        // required

	CreatedAt int64 `bun:"created_at,notnull"`
	// insertion order, breaks ties between events sharing a start instant
	Seq int64 `bun:"seq,notnull"`

	NotificationSent bool `bun:"notification_sent"`

	CreatedBy *User `bun:"rel:belongs-to,join:created_by_id=id"`
}

// Insert writes the event as-is. Field validation is the caller's job;
// the store trusts whatever the presentation layer hands it.
func (e *Event) Insert(ctx context.Context, db bun.IDB) error {
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().UTC().Unix()
	}
	if _, err := db.NewInsert().
		Model(e).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Event).Insert: %w", err)
	}
	return nil
}

func (e *Event) StartIn(loc *time.Location) time.Time {
	return time.Unix(e.StartDateUnixUTC, 0).In(loc)
}

func (e *Event) EndIn(loc *time.Location) time.Time {
	return time.Unix(e.EndDateUnixUTC, 0).In(loc)
}

func (e *Event) CreatorName() string {
	if e.CreatedBy != nil {
		return e.CreatedBy.Name
	}
	if user, ok := UserByKey(e.CreatedByID); ok {
		return user.Name
	}
	return e.CreatedByID
}

func (e *Event) ToDiscordEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Start Date",
				Value: func() string {
					if e.AllDay {
						return fmt.Sprintf("<t:%d:D>", e.StartDateUnixUTC)
					}
					return fmt.Sprintf("<t:%d:f>", e.StartDateUnixUTC)
				}(),
				Inline: true,
			},
			{
				Name: "End Date",
				Value: func() string {
					if e.AllDay {
						return fmt.Sprintf("<t:%d:D>", e.EndDateUnixUTC)
					}
					return fmt.Sprintf("<t:%d:f>", e.EndDateUnixUTC)
				}(),
				Inline: true,
			},
			{
				Name:   "Status",
				Value:  string(e.Status),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: e.ID,
		},
		Author: &discordgo.MessageEmbedAuthor{
			Name: e.CreatorName(),
		},
	}
	if e.Location != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Location",
			Value: e.Location,
		})
	}
	if e.ParticipantsCategory != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Participants",
			Value: e.ParticipantsCategory,
		})
	}

	return embed
}
