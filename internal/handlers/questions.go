// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/auth"
	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
	"codeberg.org/teamhub/qna/internal/services/forum"
)

type createQuestionRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=150"`
	Description string   `json:"description" validate:"required,max=10000"`
	Tags        []string `json:"tags" validate:"required,min=2,max=4,dive,topic"`
}

// CreateQuestion creates a new question.
func (h *Handlers) CreateQuestion(c echo.Context) error {
	var req createQuestionRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}
	if len(strings.TrimSpace(req.Title)) < 5 {
		return renderError(c, apperr.New(apperr.Validation, "Title must be at least 5 characters"))
	}

	user := auth.GetUser(c.Request().Context())
	question, err := h.forum.CreateQuestion(c.Request().Context(), user, req.Title, req.Description, req.Tags)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"question": question})
}

type questionListItem struct {
	models.QuestionWithCounts
	Author models.UserSummary `json:"author"`
}

// ListQuestions returns a filtered, paginated question listing.
func (h *Handlers) ListQuestions(c echo.Context) error {
	filter := repository.QuestionFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Status: c.QueryParam("status"),
	}
	if tags := c.QueryParam("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	questions, total, err := h.forum.ListQuestions(c.Request().Context(), filter)
	if err != nil {
		return renderError(c, err)
	}

	items := make([]questionListItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, questionListItem{QuestionWithCounts: q, Author: q.Author()})
	}

	// Mirror the clamping applied by the service so the envelope reports the
	// effective page and limit.
	limit := min(max(filter.Limit, 1), forum.MaxPageSize)
	if filter.Limit < 1 {
		limit = forum.DefaultPageSize
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	return c.JSON(http.StatusOK, echo.Map{
		"questions": items,
		"pagination": echo.Map{
			"page":       max(filter.Page, 1),
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

type commentResponse struct {
	models.Comment
	Author models.UserSummary `json:"author"`
}

type answerResponse struct {
	models.Answer
	Author   models.UserSummary `json:"author"`
	Comments []commentResponse  `json:"comments"`
}

func commentResponses(comments []models.CommentWithAuthor) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, commentResponse{Comment: comment.Comment, Author: comment.Author()})
	}
	return out
}

// GetQuestion returns the full question detail.
func (h *Handlers) GetQuestion(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	detail, err := h.forum.GetQuestionDetail(c.Request().Context(), c.Param("id"), user)
	if err != nil {
		return renderError(c, err)
	}

	answers := make([]answerResponse, 0, len(detail.Answers))
	for _, a := range detail.Answers {
		answers = append(answers, answerResponse{
			Answer:   a.Answer,
			Author:   a.AnswerWithAuthor.Author(),
			Comments: commentResponses(a.Comments),
		})
	}

	resp := echo.Map{
		"question": detail.Question,
		"author": echo.Map{
			"id":   detail.Question.CreatedBy,
			"name": detail.AuthorName,
			"role": detail.AuthorRole,
		},
		"answers":   answers,
		"comments":  commentResponses(detail.Comments),
		"userVotes": detail.UserVotes,
	}
	if user != nil {
		resp["currentUserId"] = user.ID
	}
	return c.JSON(http.StatusOK, resp)
}

type updateQuestionRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=5,max=150"`
	Description *string  `json:"description" validate:"omitempty,max=10000"`
	Tags        []string `json:"tags" validate:"omitempty,min=2,max=4,dive,topic"`
}

// UpdateQuestion applies a partial update to a question.
func (h *Handlers) UpdateQuestion(c echo.Context) error {
	var req updateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}

	upd := repository.QuestionUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Tags != nil {
		upd.Tags = models.TagList(req.Tags)
	}

	user := auth.GetUser(c.Request().Context())
	question, err := h.forum.UpdateQuestion(c.Request().Context(), user, c.Param("id"), upd)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"question": question})
}

// DeleteQuestion removes a question with its answers and comments.
func (h *Handlers) DeleteQuestion(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if err := h.forum.DeleteQuestion(c.Request().Context(), user, c.Param("id")); err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Question deleted"})
}

type createAnswerRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// CreateAnswer posts an answer on a question.
func (h *Handlers) CreateAnswer(c echo.Context) error {
	var req createAnswerRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}

	user := auth.GetUser(c.Request().Context())
	answer, err := h.forum.CreateAnswer(c.Request().Context(), user, c.Param("id"), req.Content)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"answer": answer})
}

// ResolveQuestion marks a question as resolved.
func (h *Handlers) ResolveQuestion(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	question, err := h.forum.ResolveQuestion(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"question": question})
}

// ReopenQuestion moves a resolved question back to active.
func (h *Handlers) ReopenQuestion(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	question, err := h.forum.ReopenQuestion(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"question": question})
}
