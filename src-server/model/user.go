package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID   string `bun:"id,pk,notnull,unique"`
	Name string `bun:"name,notnull"`
}

// The household roster is fixed: exactly these two users exist for the
// lifetime of the process. Events reference them by ID.
var (
	UserKarsen = User{ID: "karsen", Name: "Karsen"}
	UserDalton = User{ID: "dalton", Name: "Dalton"}
)

const DefaultUserKey = "karsen"

var Users = map[string]User{
	UserKarsen.ID: UserKarsen,
	UserDalton.ID: UserDalton,
}

func UserByKey(key string) (User, bool) {
	user, ok := Users[key]
	return user, ok
}

func (u *User) Upsert(ctx context.Context, db bun.IDB) error {
	if u.ID == "" {
		return fmt.Errorf("(*User).Upsert: user id is blank")
	}

	_, err := db.
		NewInsert().
		Model(u).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Exec(ctx)

	return err
}
