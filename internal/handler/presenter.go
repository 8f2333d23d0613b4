package handler

import (
	"time"

	"noticeboard/internal/model"
	"noticeboard/internal/policy"
	"noticeboard/internal/service"
)

const (
	unknownWriter = "알수없음"
	answerWriter  = "관리자"
	dateLayout    = "2006-01-02"
)

// ListItem is one row of the board list.
type ListItem struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Writer        string `json:"writer"`
	Date          string `json:"date"`
	View          int    `json:"view"`
	Category      string `json:"category"`
	IsOwner       bool   `json:"is_owner"`
	CanOpenDetail bool   `json:"can_open_detail"`
}

// ListResponse is the board list payload.
type ListResponse struct {
	Items []ListItem `json:"items"`
	service.Pagination
	IsLoggedIn bool `json:"is_logged_in"`
	IsAdmin    bool `json:"is_admin"`
}

// NoticeItem is one row of the notices feed.
type NoticeItem struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// NoticesResponse is the notices feed payload.
type NoticesResponse struct {
	Items []NoticeItem `json:"items"`
}

// AnswerItem is an admin answer as shown on the detail page.
type AnswerItem struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
	Writer  string `json:"writer"`
	Date    string `json:"date"`
}

// DetailItem is the full projection of a post.
type DetailItem struct {
	ID       uint         `json:"id"`
	Title    string       `json:"title"`
	Content  string       `json:"content"`
	Category string       `json:"category"`
	Writer   string       `json:"writer"`
	Date     string       `json:"date"`
	View     int          `json:"view"`
	ImgURL   *string      `json:"img_url"`
	IsOwner  bool         `json:"is_owner"`
	IsAdmin  bool         `json:"is_admin"`
	Answers  []AnswerItem `json:"answers"`
}

// DetailResponse wraps a detail item.
type DetailResponse struct {
	Item DetailItem `json:"item"`
}

// MessageResponse is the acknowledgement returned by mutating endpoints.
type MessageResponse struct {
	Msg string `json:"msg"`
	ID  uint   `json:"id,omitempty"`
	OK  bool   `json:"ok,omitempty"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func writerName(post *model.Post) string {
	if post.User == nil {
		return unknownWriter
	}
	return post.User.Nickname
}

func toListResponse(result *service.ListResult, viewer *model.User) ListResponse {
	items := make([]ListItem, 0, len(result.Posts))
	for i := range result.Posts {
		post := &result.Posts[i]
		items = append(items, ListItem{
			ID:       post.ID,
			Title:    post.DisplayTitle(),
			Writer:   writerName(post),
			Date:     formatDate(post.CreatedAt),
			View:     post.ViewCount,
			Category: post.Category,
			IsOwner:  policy.IsOwner(viewer, post),
			// Detail access is checked by the detail endpoint itself.
			CanOpenDetail: true,
		})
	}

	return ListResponse{
		Items:      items,
		Pagination: result.Pagination,
		IsLoggedIn: viewer != nil,
		IsAdmin:    policy.IsAdmin(viewer),
	}
}

func toNoticesResponse(posts []model.Post) NoticesResponse {
	items := make([]NoticeItem, 0, len(posts))
	for i := range posts {
		items = append(items, NoticeItem{
			ID:    posts[i].ID,
			Title: posts[i].DisplayTitle(),
			Date:  formatDate(posts[i].CreatedAt),
		})
	}
	return NoticesResponse{Items: items}
}

func toDetailItem(post *model.Post, viewer *model.User) DetailItem {
	answers := make([]AnswerItem, 0, len(post.Answers))
	for _, a := range post.Answers {
		answers = append(answers, AnswerItem{
			ID:      a.ID,
			Content: a.Content,
			Writer:  answerWriter,
			Date:    formatDate(a.CreatedAt),
		})
	}

	return DetailItem{
		ID:       post.ID,
		Title:    post.DisplayTitle(),
		Content:  post.Content,
		Category: post.Category,
		Writer:   writerName(post),
		Date:     formatDate(post.CreatedAt),
		View:     post.ViewCount,
		ImgURL:   post.ImgURL,
		IsOwner:  policy.IsOwner(viewer, post),
		IsAdmin:  policy.IsAdmin(viewer),
		Answers:  answers,
	}
}
