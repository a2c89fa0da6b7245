package mapper

import (
	"testing"
	"time"

	"clubhub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAvatarURL_EscapesName(t *testing.T) {
	assert.Equal(t, "https://ui-avatars.com/api/?name=Ada+Lovelace", AvatarURL("Ada Lovelace"))
	assert.Equal(t, "https://ui-avatars.com/api/?name=J%C3%BCrgen", AvatarURL("Jürgen"))
}

func TestUserEntity_Defaults(t *testing.T) {
	u := UserEntity(&models.User{ID: "m1", Email: "ada@club.example"})

	assert.Equal(t, "ada", u.Name)
	assert.Equal(t, AvatarURL("ada"), u.Avatar)
	assert.Equal(t, models.RoleMember, u.Role)

	u = UserEntity(&models.User{ID: "m2", Email: "broken"})
	assert.Equal(t, "Unknown", u.Name)
}

func TestUserEntity_KeepsStoredFields(t *testing.T) {
	u := UserEntity(&models.User{
		ID: "m1", Name: "Ada", Avatar: "https://cdn.club.example/a.png", Role: models.RoleAdmin,
	})
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "https://cdn.club.example/a.png", u.Avatar)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestDisplayTimestamp_FallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p := PostEntity(&models.Post{ID: "p1", Timestamp: 42, CreatedAt: created})
	assert.EqualValues(t, 42, p.Timestamp)

	p = PostEntity(&models.Post{ID: "p2", CreatedAt: created})
	assert.Equal(t, created.UnixMilli(), p.Timestamp)
}

func TestPostEntity_NilLikesBecomeEmpty(t *testing.T) {
	p := PostEntity(&models.Post{ID: "p1"})
	assert.NotNil(t, p.Likes)
	assert.Empty(t, p.Likes)
}

func TestNewPostRow_ForcesLikesAndCounter(t *testing.T) {
	author := User{ID: "m1", Name: "Ada", Avatar: "a.png"}

	row := NewPostRow(Post{
		ID:           "client-id",
		Content:      "hello",
		Timestamp:    99,
		Likes:        []string{"m9"},
		CommentCount: 7,
		UserName:     "Spoofed",
	}, author)

	assert.Equal(t, "client-id", row.ID)
	assert.EqualValues(t, 99, row.Timestamp)
	assert.Equal(t, "m1", row.UserID)
	assert.Equal(t, "Ada", row.UserName)
	assert.Empty(t, row.Likes)
	assert.Zero(t, row.CommentCount)
}

func TestNewPostRow_ServerDefaults(t *testing.T) {
	row := NewPostRow(Post{Content: "hello"}, User{ID: "m1"})
	assert.NotEmpty(t, row.ID)
	assert.NotZero(t, row.Timestamp)
}

func TestNewEventRow_IgnoresAttendees(t *testing.T) {
	row := NewEventRow(Event{Title: "Fair", Date: "2026-07-04", Attendees: []string{"m1"}})
	assert.NotEmpty(t, row.ID)
	assert.Empty(t, row.Attendees)
}
