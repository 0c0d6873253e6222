package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// CommentUseCase owns investigation notes on tickets
type CommentUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewCommentUseCase(repo interfaces.Repository, now func() time.Time) *CommentUseCase {
	return &CommentUseCase{
		repo: repo,
		now:  now,
	}
}

// Add files a note on a ticket under one of the framework stages
func (uc *CommentUseCase) Add(ctx context.Context, ticketID types.TicketID, authorID types.UserID, text string, stage types.Stage) (*model.Comment, error) {
	exists, err := uc.repo.Ticket().Exists(ctx, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check ticket", goerr.V("ticket_id", ticketID))
	}
	if !exists {
		return nil, goerr.Wrap(ErrTicketNotFound, "cannot comment", goerr.V("ticket_id", ticketID))
	}

	comment := &model.Comment{
		TicketID:  ticketID,
		AuthorID:  authorID,
		Text:      text,
		Stage:     stage,
		CreatedAt: uc.now(),
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Comment().Create(ctx, comment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create comment", goerr.V("ticket_id", ticketID))
	}

	return created, nil
}

// Update rewrites a comment's text and stage
func (uc *CommentUseCase) Update(ctx context.Context, commentID types.CommentID, text string, stage types.Stage) error {
	comment, err := uc.repo.Comment().Get(ctx, commentID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrCommentNotFound, "cannot update", goerr.V("comment_id", commentID))
		}
		return goerr.Wrap(err, "failed to get comment", goerr.V("comment_id", commentID))
	}

	comment.Text = text
	comment.Stage = stage
	if err := comment.Validate(); err != nil {
		return err
	}

	if _, err := uc.repo.Comment().Update(ctx, comment); err != nil {
		return goerr.Wrap(err, "failed to update comment", goerr.V("comment_id", commentID))
	}

	return nil
}

// Remove deletes a comment
func (uc *CommentUseCase) Remove(ctx context.Context, commentID types.CommentID) error {
	if err := uc.repo.Comment().Delete(ctx, commentID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrCommentNotFound, "cannot remove", goerr.V("comment_id", commentID))
		}
		return goerr.Wrap(err, "failed to delete comment", goerr.V("comment_id", commentID))
	}
	return nil
}

// TicketOf resolves the ticket a comment belongs to
func (uc *CommentUseCase) TicketOf(ctx context.Context, commentID types.CommentID) (types.TicketID, error) {
	comment, err := uc.repo.Comment().Get(ctx, commentID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return 0, goerr.Wrap(ErrCommentNotFound, "cannot resolve ticket", goerr.V("comment_id", commentID))
		}
		return 0, goerr.Wrap(err, "failed to get comment", goerr.V("comment_id", commentID))
	}
	return comment.TicketID, nil
}
