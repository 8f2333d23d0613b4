package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noticeboard/internal/auth"
	"noticeboard/internal/config"
	"noticeboard/internal/handler"
	"noticeboard/internal/model"
	"noticeboard/internal/service"
)

const testSecret = "router-test-secret"

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) List(ctx context.Context, q service.ListQuery) (*service.ListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult), args.Error(1)
}

func (m *MockBoardService) Notices(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockBoardService) Get(ctx context.Context, viewer *model.User, id uint) (*model.Post, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockBoardService) Create(ctx context.Context, viewer *model.User, in service.CreatePostInput) (*model.Post, error) {
	args := m.Called(ctx, viewer, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockBoardService) Update(ctx context.Context, viewer *model.User, id uint, in service.UpdatePostInput) (*model.Post, error) {
	args := m.Called(ctx, viewer, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockBoardService) Delete(ctx context.Context, viewer *model.User, id uint) error {
	args := m.Called(ctx, viewer, id)
	return args.Error(0)
}

func (m *MockBoardService) AddAnswer(ctx context.Context, viewer *model.User, postID uint, content string) (*model.Answer, error) {
	args := m.Called(ctx, viewer, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Answer), args.Error(1)
}

// stubResolver resolves subjects from a fixed map.
type stubResolver struct {
	users map[string]*model.User
	err   error
}

func (r *stubResolver) Resolve(_ context.Context, subject string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[subject], nil
}

var (
	member = &model.User{ID: 7, UserID: "member-sub", Nickname: "회원", Role: model.RoleMember}
	admin  = &model.User{ID: 1, UserID: "admin-sub", Nickname: "운영자", Role: model.RoleAdmin}
)

type testServer struct {
	echo  *echo.Echo
	board *MockBoardService
	jwt   *auth.JWTService
}

func newTestServer(t *testing.T, resolver auth.IdentityResolver) *testServer {
	t.Helper()
	if resolver == nil {
		resolver = &stubResolver{users: map[string]*model.User{
			member.UserID: member,
			admin.UserID:  admin,
		}}
	}

	board := new(MockBoardService)
	jwtService := auth.NewJWTService(testSecret)
	cfg := &config.Config{CORSAllowOrigins: []string{"http://localhost:3000"}}

	e := echo.New()
	routes := Register(e, cfg, jwtService, resolver, handler.NewBoardHandler(board), handler.NewUserHandler())
	require.NotEmpty(t, routes)

	return &testServer{echo: e, board: board, jwt: jwtService}
}

func (s *testServer) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) token(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := s.jwt.GenerateAccessToken(user.UserID, user.Nickname, time.Minute)
	require.NoError(t, err)
	return token
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg  string `json:"msg"`
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Msg)
	return body.Code
}

func TestRoutes_DeclareAccess(t *testing.T) {
	routes := Routes(handler.NewBoardHandler(new(MockBoardService)), handler.NewUserHandler())

	seen := make(map[string]Access, len(routes))
	for _, r := range routes {
		assert.NotNil(t, r.Handler, "%s %s", r.Method, r.Path)
		seen[r.Method+" "+r.Path] = r.Access
	}

	assert.Equal(t, AccessUser, seen["POST /board"])
	assert.Equal(t, AccessUser, seen["PUT /board/:id"])
	assert.Equal(t, AccessUser, seen["DELETE /board/:id"])
	assert.Equal(t, AccessAdmin, seen["POST /board/:id/answer"])
	assert.Equal(t, AccessOptional, seen["GET /board/:id"])
	assert.Equal(t, AccessPublic, seen["GET /board/notices"])
}

func TestRouter_Healthz(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_Me(t *testing.T) {
	s := newTestServer(t, nil)
	foreign, err := auth.NewJWTService("other-secret").GenerateAccessToken(member.UserID, member.Nickname, time.Minute)
	require.NoError(t, err)
	unknown, err := s.jwt.GenerateAccessToken("nobody", "", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  handler.SessionResponse
	}{
		{name: "anonymous", want: handler.SessionResponse{}},
		{name: "garbage token", token: "not-a-jwt", want: handler.SessionResponse{}},
		{name: "foreign signature", token: foreign, want: handler.SessionResponse{}},
		{name: "unknown subject", token: unknown, want: handler.SessionResponse{}},
		{
			name:  "member",
			token: s.token(t, member),
			want:  handler.SessionResponse{IsLoggedIn: true, Nickname: "회원"},
		},
		{
			name:  "admin",
			token: s.token(t, admin),
			want:  handler.SessionResponse{IsLoggedIn: true, IsAdmin: true, Nickname: "운영자"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/me", "", tt.token)

			require.Equal(t, http.StatusOK, rec.Code)
			var got handler.SessionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouter_ResolverFailure(t *testing.T) {
	s := newTestServer(t, &stubResolver{err: errors.New("db down")})

	rec := s.do(t, http.MethodGet, "/api/me", "", s.token(t, member))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeCode(t, rec))
}

func TestRouter_RequiresLoginForWrites(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/api/board", `{"title":"t","content":"c"}`},
		{http.MethodPut, "/api/board/3", `{"title":"t"}`},
		{http.MethodDelete, "/api/board/3", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.target, tt.body, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHORIZED", decodeCode(t, rec))
		})
	}
	s.board.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	s.board.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.board.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

var otherCategory = "기타"

func TestRouter_CreateAsMember(t *testing.T) {
	s := newTestServer(t, nil)
	s.board.On("Create", mock.Anything, member, service.CreatePostInput{Title: "t", Content: "c", Category: &otherCategory}).
		Return(&model.Post{ID: 42}, nil)

	rec := s.do(t, http.MethodPost, "/api/board", `{"title":"t","content":"c","boardType":"기타"}`, s.token(t, member))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":42`)
	s.board.AssertExpectations(t)
}

func TestRouter_AnswerRequiresAdmin(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name  string
		token string
	}{
		{name: "anonymous"},
		{name: "member", token: s.token(t, member)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/board/5/answer", `{"content":"답변"}`, tt.token)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, "FORBIDDEN", decodeCode(t, rec))
			assert.Equal(t, "관리자만 답변이 가능합니다.", decodeMsg(t, rec.Body.Bytes()))
		})
	}
	s.board.AssertNotCalled(t, "AddAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_AnswerAsAdmin(t *testing.T) {
	s := newTestServer(t, nil)
	s.board.On("AddAnswer", mock.Anything, admin, uint(5), "답변").Return(&model.Answer{ID: 9}, nil)

	rec := s.do(t, http.MethodPost, "/api/board/5/answer", `{"content":"답변"}`, s.token(t, admin))

	assert.Equal(t, http.StatusCreated, rec.Code)
	s.board.AssertExpectations(t)
}

func TestRouter_ListIsOptional(t *testing.T) {
	s := newTestServer(t, nil)
	s.board.On("List", mock.Anything, mock.Anything).
		Return(&service.ListResult{Pagination: service.NewPagination(1, 10, 0)}, nil)

	for _, target := range []string{"/api/board", "/api/board/"} {
		rec := s.do(t, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `"is_logged_in":false`)
	}

	rec := s.do(t, http.MethodGet, "/api/board", "", s.token(t, admin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_admin":true`)
}

func TestRegister_InstallsRouteTable(t *testing.T) {
	e := echo.New()
	routes := Register(e, &config.Config{}, auth.NewJWTService(testSecret), &stubResolver{},
		handler.NewBoardHandler(new(MockBoardService)), handler.NewUserHandler())

	installed := make(map[string]bool)
	for _, r := range e.Routes() {
		installed[r.Method+" "+r.Path] = true
	}
	for _, r := range routes {
		assert.True(t, installed[r.Method+" /api"+r.Path], "%s %s (%s)", r.Method, r.Path, r.Access)
	}
}

func TestAccess_String(t *testing.T) {
	assert.Equal(t, "public", AccessPublic.String())
	assert.Equal(t, "admin", AccessAdmin.String())
	assert.Equal(t, "unknown", Access(99).String())
}
