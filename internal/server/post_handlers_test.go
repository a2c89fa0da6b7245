package server

import (
	"encoding/json"
	"testing"

	"clubhub/internal/mapper"
	"clubhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPost posts content through the API and returns the created post.
func createPost(t *testing.T, app *fiber.App, token, content string) mapper.Post {
	t.Helper()

	status, raw := doRequest(t, app, fiber.MethodPost, "/api/posts", token, map[string]string{
		"content": content,
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var post mapper.Post
	require.NoError(t, json.Unmarshal(raw, &post))
	require.NotEmpty(t, post.ID)
	return post
}

func TestCreatePost_AndList(t *testing.T) {
	_, app := newTestServer(t)
	id, token := signup(t, app, "Ada", "Lovelace", "ada@club.example")

	post := createPost(t, app, token, "first meeting notes")
	assert.Equal(t, id, post.UserID)
	assert.Equal(t, "Ada Lovelace", post.UserName)
	assert.Empty(t, post.Likes)
	assert.Zero(t, post.CommentCount)

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/posts", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	var posts []mapper.Post
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestCreatePost_RequiresContentOrImage(t *testing.T) {
	_, app := newTestServer(t)
	_, token := signup(t, app, "Ada", "Lovelace", "ada@club.example")

	status, _ := doRequest(t, app, fiber.MethodPost, "/api/posts", token, map[string]string{
		"content": "",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetPost_NotFound(t *testing.T) {
	_, app := newTestServer(t)
	_, token := signup(t, app, "Ada", "Lovelace", "ada@club.example")

	status, _ := doRequest(t, app, fiber.MethodGet, "/api/posts/missing", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestToggleLike_Involution(t *testing.T) {
	_, app := newTestServer(t)
	_, token := signup(t, app, "Ada", "Lovelace", "ada@club.example")
	fanID, fanToken := signup(t, app, "Ben", "", "ben@club.example")

	post := createPost(t, app, token, "like me")

	status, raw := doRequest(t, app, fiber.MethodPost, "/api/posts/"+post.ID+"/like", fanToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var liked mapper.Post
	require.NoError(t, json.Unmarshal(raw, &liked))
	assert.Equal(t, []string{fanID}, liked.Likes)

	status, raw = doRequest(t, app, fiber.MethodPost, "/api/posts/"+post.ID+"/like", fanToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var unliked mapper.Post
	require.NoError(t, json.Unmarshal(raw, &unliked))
	assert.Empty(t, unliked.Likes)
}

func TestDeletePost_OwnershipRules(t *testing.T) {
	s, app := newTestServer(t)
	_, authorToken := signup(t, app, "Ada", "Lovelace", "ada@club.example")
	_, strangerToken := signup(t, app, "Ben", "", "ben@club.example")
	adminID, adminToken := signup(t, app, "Cleo", "", "cleo@club.example")
	promote(t, s, adminID)

	post := createPost(t, app, authorToken, "mine")

	// A stranger cannot delete.
	status, _ := doRequest(t, app, fiber.MethodDelete, "/api/posts/"+post.ID, strangerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// The author can.
	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/posts/"+post.ID, authorToken, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	// An admin can delete someone else's post.
	other := createPost(t, app, authorToken, "theirs")
	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/posts/"+other.ID, adminToken, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/posts/"+other.ID, authorToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCommentFlow(t *testing.T) {
	_, app := newTestServer(t)
	_, authorToken := signup(t, app, "Ada", "Lovelace", "ada@club.example")
	benID, benToken := signup(t, app, "Ben", "", "ben@club.example")

	post := createPost(t, app, authorToken, "discuss")

	status, raw := doRequest(t, app, fiber.MethodPost, "/api/posts/"+post.ID+"/comments", benToken, map[string]string{
		"content": "great idea",
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var comment mapper.Comment
	require.NoError(t, json.Unmarshal(raw, &comment))
	assert.Equal(t, benID, comment.UserID)
	assert.Equal(t, post.ID, comment.PostID)

	// The counter on the post reflects the comment.
	status, raw = doRequest(t, app, fiber.MethodGet, "/api/posts/"+post.ID, benToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var fetched mapper.Post
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, 1, fetched.CommentCount)

	status, raw = doRequest(t, app, fiber.MethodGet, "/api/posts/"+post.ID+"/comments", authorToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var comments []mapper.Comment
	require.NoError(t, json.Unmarshal(raw, &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "great idea", comments[0].Content)
}

func TestDeleteComment_OwnershipRules(t *testing.T) {
	_, app := newTestServer(t)
	_, authorToken := signup(t, app, "Ada", "Lovelace", "ada@club.example")
	_, benToken := signup(t, app, "Ben", "", "ben@club.example")
	_, strangerToken := signup(t, app, "Cleo", "", "cleo@club.example")

	post := createPost(t, app, authorToken, "discuss")

	addComment := func(token string) mapper.Comment {
		status, raw := doRequest(t, app, fiber.MethodPost, "/api/posts/"+post.ID+"/comments", token, map[string]string{
			"content": "a reply",
		})
		require.Equal(t, fiber.StatusCreated, status)
		var c mapper.Comment
		require.NoError(t, json.Unmarshal(raw, &c))
		return c
	}

	// A third member can neither delete someone else's comment...
	c1 := addComment(benToken)
	status, _ := doRequest(t, app, fiber.MethodDelete, "/api/posts/"+post.ID+"/comments/"+c1.ID, strangerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// ...but the comment author can.
	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/posts/"+post.ID+"/comments/"+c1.ID, benToken, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	// The post author can moderate comments on their own post.
	c2 := addComment(benToken)
	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/posts/"+post.ID+"/comments/"+c2.ID, authorToken, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/posts/"+post.ID+"/comments/missing", authorToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestNotifications_LikeAndReadAll(t *testing.T) {
	_, app := newTestServer(t)
	_, authorToken := signup(t, app, "Ada", "Lovelace", "ada@club.example")
	fanID, fanToken := signup(t, app, "Ben", "", "ben@club.example")

	post := createPost(t, app, authorToken, "like me")

	status, _ := doRequest(t, app, fiber.MethodPost, "/api/posts/"+post.ID+"/like", fanToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/notifications", authorToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var panel []mapper.Notification
	require.NoError(t, json.Unmarshal(raw, &panel))
	require.Len(t, panel, 1)
	assert.Equal(t, models.NotificationLike, panel[0].Type)
	assert.Equal(t, fanID, panel[0].ActorID)
	assert.False(t, panel[0].IsRead)

	// The fan sees nothing; reacting to your own feed entry never notifies.
	status, raw = doRequest(t, app, fiber.MethodGet, "/api/notifications", fanToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var fanPanel []mapper.Notification
	require.NoError(t, json.Unmarshal(raw, &fanPanel))
	assert.Empty(t, fanPanel)

	status, _ = doRequest(t, app, fiber.MethodPost, "/api/notifications/read-all", authorToken, nil)
	require.Equal(t, fiber.StatusNoContent, status)

	status, raw = doRequest(t, app, fiber.MethodGet, "/api/notifications", authorToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &panel))
	require.Len(t, panel, 1)
	assert.True(t, panel[0].IsRead)
}
