package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"member-chat-server/internal/model"
	"member-chat-server/internal/repository"
)

type ChatServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ChatService
	author  *model.Member
	ctx     context.Context
}

func TestChatServiceSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceSuite))
}

func (s *ChatServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewChatService(repository.NewMessageRepository(s.db), 200)
	s.ctx = context.Background()

	s.author = &model.Member{Username: "alice", PasswordHash: "x"}
	s.Require().NoError(s.db.Create(s.author).Error)
}

func (s *ChatServiceSuite) TestPostMessage() {
	view, err := s.service.PostMessage(s.ctx, s.author, "hi")
	s.Require().NoError(err)

	s.NotZero(view.ID)
	s.Equal("alice", view.AuthorUsername)
	s.Equal("hi", view.Text)
	s.False(view.CreatedAt.IsZero())
}

func (s *ChatServiceSuite) TestPostMessageAtLimit() {
	// 正好 200 字符可以通过
	view, err := s.service.PostMessage(s.ctx, s.author, strings.Repeat("a", 200))
	s.Require().NoError(err)
	s.Len(view.Text, 200)
}

func (s *ChatServiceSuite) TestPostMessageOverLimit() {
	_, err := s.service.PostMessage(s.ctx, s.author, strings.Repeat("a", 201))
	s.ErrorIs(err, ErrMessageTooLong)
}

func (s *ChatServiceSuite) TestPostMessageEmpty() {
	_, err := s.service.PostMessage(s.ctx, s.author, "")
	s.ErrorIs(err, ErrMessageEmpty)
}

func (s *ChatServiceSuite) TestListMessagesInCreationOrder() {
	_, err := s.service.PostMessage(s.ctx, s.author, "first")
	s.Require().NoError(err)
	_, err = s.service.PostMessage(s.ctx, s.author, "second")
	s.Require().NoError(err)
	_, err = s.service.PostMessage(s.ctx, s.author, "third")
	s.Require().NoError(err)

	views, err := s.service.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(views, 3)

	s.Equal("first", views[0].Text)
	s.Equal("second", views[1].Text)
	s.Equal("third", views[2].Text)
}

func (s *ChatServiceSuite) TestListMessagesAnnotatesAuthor() {
	bob := &model.Member{Username: "bob", PasswordHash: "x"}
	s.Require().NoError(s.db.Create(bob).Error)

	_, err := s.service.PostMessage(s.ctx, s.author, "from alice")
	s.Require().NoError(err)
	_, err = s.service.PostMessage(s.ctx, bob, "from bob")
	s.Require().NoError(err)

	views, err := s.service.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(views, 2)

	s.Equal("alice", views[0].AuthorUsername)
	s.Equal("bob", views[1].AuthorUsername)
}

func (s *ChatServiceSuite) TestListMessagesEmpty() {
	views, err := s.service.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Empty(views)
}

func (s *ChatServiceSuite) TestMessageCountByAuthor() {
	repo := repository.NewMessageRepository(s.db)

	_, err := s.service.PostMessage(s.ctx, s.author, "one")
	s.Require().NoError(err)
	_, err = s.service.PostMessage(s.ctx, s.author, "two")
	s.Require().NoError(err)

	count, err := repo.CountByAuthorID(s.ctx, s.author.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}
