package transport

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/config"
	"github.com/giveshare/giveshare-back/internal/db"
	"github.com/giveshare/giveshare-back/internal/service"
)

type (
	RegisterReq struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=12"`
	}

	LoginReq struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserReq struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IconImage   *string `json:"iconImage"`
	}

	PostReq struct {
		Title     string  `json:"title" validate:"required"`
		Content   string  `json:"content" validate:"required"`
		Category  string  `json:"category" validate:"required,oneof=GiveYou GiveMe"`
		IsPrivate bool    `json:"isPrivate"`
		BgImage   *string `json:"bgImage"`
		GroupID   *string `json:"groupId"`
	}

	PostPatchReq struct {
		Title     *string `json:"title"`
		Content   *string `json:"content"`
		Category  *string `json:"category" validate:"omitempty,oneof=GiveYou GiveMe"`
		IsPrivate *bool   `json:"isPrivate"`
		BgImage   *string `json:"bgImage"`
	}

	TagReq struct {
		Name string `json:"name" validate:"required"`
	}

	TagPostRelationReq struct {
		TagID  string `json:"tagId" validate:"required"`
		PostID string `json:"postId" validate:"required"`
	}

	TagPostRelationsReq struct {
		TagPosts []TagPostRelationReq `json:"tagPosts" validate:"required,min=1,dive"`
	}

	ReadManagementReq struct {
		TargetUserID string `json:"targetUserId" validate:"required"`
		MessageID    string `json:"messageId" validate:"required"`
	}

	GroupReq struct {
		Name        string  `json:"name" validate:"required"`
		Description string  `json:"description"`
		Image       *string `json:"image"`
	}

	GroupPatchReq struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
	}

	UserGroupRelationReq struct {
		UserID  string `json:"userId" validate:"required"`
		GroupID string `json:"groupId" validate:"required"`
	}

	FavoriteReq struct {
		PostID string `json:"postId" validate:"required"`
	}

	RoomReq struct {
		UserID string `json:"userId" validate:"required"`
	}

	MessageReq struct {
		Body string `json:"body" validate:"required"`
	}

	AuthResp struct {
		User  UserResp `json:"user"`
		Token string   `json:"token"`
	}

	UserResp struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		Description string  `json:"description"`
		IconImage   *string `json:"iconImage,omitempty"`
	}

	PostResp struct {
		ID            string  `json:"id"`
		Title         string  `json:"title"`
		Content       string  `json:"content"`
		Category      string  `json:"category"`
		IsPrivate     bool    `json:"isPrivate"`
		BgImage       *string `json:"bgImage,omitempty"`
		CreatedUserID string  `json:"createdUserId"`
		GroupID       *string `json:"groupId,omitempty"`
	}

	TagResp struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	TagPostRelationResp struct {
		ID     string   `json:"id"`
		TagID  string   `json:"tagId"`
		PostID string   `json:"postId"`
		Tag    TagResp  `json:"tag"`
		Post   PostResp `json:"post"`
	}

	ReadManagementResp struct {
		ID           string `json:"id"`
		TargetUserID string `json:"targetUserId"`
		MessageID    string `json:"messageId"`
		IsRead       bool   `json:"isRead"`
	}

	GroupResp struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Image       *string `json:"image,omitempty"`
		AdminUserID string  `json:"adminUserId"`
		ProductID   string  `json:"productId"`
	}

	UserGroupRelationResp struct {
		ID      string    `json:"id"`
		UserID  string    `json:"userId"`
		GroupID string    `json:"groupId"`
		User    UserResp  `json:"user"`
		Group   GroupResp `json:"group"`
	}

	RoomMemberResp struct {
		ID     string   `json:"id"`
		RoomID string   `json:"roomId"`
		UserID string   `json:"userId"`
		User   UserResp `json:"user"`
	}

	RoomResp struct {
		ID      string           `json:"id"`
		GroupID *string          `json:"groupId,omitempty"`
		Members []RoomMemberResp `json:"members"`
	}

	MessageResp struct {
		ID     string   `json:"id"`
		RoomID string   `json:"roomId"`
		UserID string   `json:"userId"`
		Body   string   `json:"body"`
		User   UserResp `json:"user"`
	}

	NotificationResp struct {
		ID           string `json:"id"`
		TargetUserID string `json:"targetUserId"`
		Message      string `json:"message"`
		URL          string `json:"url"`
		IsChecked    bool   `json:"isChecked"`
	}

	FavoriteResp struct {
		ID            string   `json:"id"`
		CreatedUserID string   `json:"createdUserId"`
		PostID        string   `json:"postId"`
		Post          PostResp `json:"post"`
	}

	AttachmentResp struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}

	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		service *service.Service
		logger  *zap.SugaredLogger
	}
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, svc *service.Service, tokens *auth.TokenService, client *gorm.DB, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()

	instance := HTTPServer{
		service: svc,
		logger:  logger,
	}

	e.POST("/auth/register", instance.Register)
	e.POST("/auth/login", instance.Login)

	userG := e.Group("/users")
	userG.GET("/me", instance.GetCurrentUser)
	userG.GET("/:id", instance.GetUser)
	userG.PATCH("/:id", instance.UpdateUser)
	userG.DELETE("/:id", instance.DeleteUser)

	postG := e.Group("/posts")
	postG.GET("", instance.GetPosts)
	postG.GET("/:id", instance.GetPost)
	postG.POST("", instance.CreatePost)
	postG.PATCH("/:id", instance.UpdatePost)
	postG.DELETE("/:id", instance.DeletePost)

	tagG := e.Group("/tags")
	tagG.GET("", instance.GetAllTags)
	tagG.POST("", instance.CreateTag)

	relationG := e.Group("/tag-post-relations")
	relationG.GET("", instance.GetTagPostRelations)
	relationG.POST("", instance.CreateTagPostRelation)
	relationG.POST("/batch", instance.CreateTagPostRelations)
	relationG.DELETE("", instance.DeleteTagPostRelation)

	readG := e.Group("/read-managements")
	readG.GET("", instance.GetReadManagement)
	readG.PATCH("", instance.UpdateReadManagement)

	groupG := e.Group("/groups")
	groupG.GET("/:id", instance.GetGroup)
	groupG.POST("", instance.CreateGroup)
	groupG.PATCH("/:id", instance.UpdateGroup)
	groupG.DELETE("/:id", instance.DeleteGroup)

	ugrG := e.Group("/user-group-relations")
	ugrG.GET("", instance.GetUserGroupRelations)
	ugrG.POST("", instance.CreateUserGroupRelation)
	ugrG.DELETE("", instance.DeleteUserGroupRelation)

	favoriteG := e.Group("/favorites")
	favoriteG.GET("", instance.GetFavorites)
	favoriteG.POST("", instance.CreateFavorite)
	favoriteG.DELETE("/:postId", instance.DeleteFavorite)

	roomG := e.Group("/rooms")
	roomG.GET("", instance.GetRoomsByLoginUserID)
	roomG.POST("", instance.CreateRoom)
	roomG.GET("/:id/target-member", instance.GetTargetRoomMember)
	roomG.GET("/:id/messages", instance.GetMessages)
	roomG.POST("/:id/messages", instance.CreateMessage)

	notificationG := e.Group("/notifications")
	notificationG.GET("", instance.GetNotifications)
	notificationG.PATCH("/:id", instance.CheckNotification)

	e.POST("/attachments", instance.CreateAttachment)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if len(reqBody) != 0 {
			logger.Debugw("request body", "path", c.Path(), "body", string(censorBody(reqBody)))
		}
	}))

	e.Use(auth.Middleware(client, tokens))

	e.Validator = &CustomValidator{validator: validator.New()}

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

func (s *HTTPServer) Register(c echo.Context) error {
	req := RegisterReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := s.service.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, AuthResp{User: toUserResp(user), Token: token})
}

func (s *HTTPServer) Login(c echo.Context) error {
	req := LoginReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := s.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, AuthResp{User: toUserResp(user), Token: token})
}

func (s *HTTPServer) GetCurrentUser(c echo.Context) error {
	user, err := s.service.GetCurrentUser(auth.CallerFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserResp(user))
}

func (s *HTTPServer) GetUser(c echo.Context) error {
	user, err := s.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserResp(user))
}

func (s *HTTPServer) UpdateUser(c echo.Context) error {
	req := UserReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := s.service.UpdateUser(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"), service.UpdateUserInput{
		Name:        req.Name,
		Description: req.Description,
		IconImage:   req.IconImage,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserResp(user))
}

func (s *HTTPServer) DeleteUser(c echo.Context) error {
	user, err := s.service.DeleteUser(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserResp(user))
}

func (s *HTTPServer) GetPosts(c echo.Context) error {
	filter := service.PostFilter{
		CreatedUserID: optionalQueryParam(c, "createdUserId"),
		Category:      optionalQueryParam(c, "category"),
		GroupID:       optionalQueryParam(c, "groupId"),
		TagID:         optionalQueryParam(c, "tagId"),
	}
	posts, err := s.service.GetPosts(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}

	resp := make([]PostResp, len(posts))
	for i := range posts {
		resp[i] = toPostResp(&posts[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) GetPost(c echo.Context) error {
	post, err := s.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toPostResp(post))
}

func (s *HTTPServer) CreatePost(c echo.Context) error {
	req := PostReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := s.service.CreatePost(c.Request().Context(), auth.CallerFromContext(c), service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		IsPrivate: req.IsPrivate,
		BgImage:   req.BgImage,
		GroupID:   req.GroupID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toPostResp(post))
}

func (s *HTTPServer) UpdatePost(c echo.Context) error {
	req := PostPatchReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := s.service.UpdatePost(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"), service.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		IsPrivate: req.IsPrivate,
		BgImage:   req.BgImage,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toPostResp(post))
}

func (s *HTTPServer) DeletePost(c echo.Context) error {
	post, err := s.service.DeletePost(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toPostResp(post))
}

func (s *HTTPServer) GetAllTags(c echo.Context) error {
	tags, err := s.service.GetAllTags(c.Request().Context(), c.QueryParam("searchText"))
	if err != nil {
		return httpError(err)
	}

	resp := make([]TagResp, len(tags))
	for i := range tags {
		resp[i] = TagResp{ID: tags[i].ID, Name: tags[i].Name}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CreateTag(c echo.Context) error {
	req := TagReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.service.CreateTag(c.Request().Context(), auth.CallerFromContext(c), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, TagResp{ID: tag.ID, Name: tag.Name})
}

func (s *HTTPServer) GetTagPostRelations(c echo.Context) error {
	relations, err := s.service.GetTagPostRelations(
		c.Request().Context(),
		optionalQueryParam(c, "tagId"),
		optionalQueryParam(c, "postId"),
	)
	if err != nil {
		return httpError(err)
	}

	resp := make([]TagPostRelationResp, len(relations))
	for i := range relations {
		resp[i] = toTagPostRelationResp(&relations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CreateTagPostRelation(c echo.Context) error {
	req := TagPostRelationReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	relation, err := s.service.CreateTagPostRelation(c.Request().Context(), auth.CallerFromContext(c), req.TagID, req.PostID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toTagPostRelationResp(relation))
}

func (s *HTTPServer) CreateTagPostRelations(c echo.Context) error {
	req := TagPostRelationsReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	pairs := make([]service.TagPostPair, len(req.TagPosts))
	for i := range req.TagPosts {
		pairs[i] = service.TagPostPair{TagID: req.TagPosts[i].TagID, PostID: req.TagPosts[i].PostID}
	}

	relations, err := s.service.CreateTagPostRelations(c.Request().Context(), auth.CallerFromContext(c), pairs)
	if err != nil {
		return httpError(err)
	}

	resp := make([]TagPostRelationResp, len(relations))
	for i := range relations {
		resp[i] = toTagPostRelationResp(&relations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) DeleteTagPostRelation(c echo.Context) error {
	tagID, err := RequireQueryParam(c, "tagId")
	if err != nil {
		return err
	}
	postID, err := RequireQueryParam(c, "postId")
	if err != nil {
		return err
	}

	relation, err := s.service.DeleteTagPostRelation(c.Request().Context(), auth.CallerFromContext(c), tagID, postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toTagPostRelationResp(relation))
}

func (s *HTTPServer) GetReadManagement(c echo.Context) error {
	targetUserID, err := RequireQueryParam(c, "targetUserId")
	if err != nil {
		return err
	}
	messageID, err := RequireQueryParam(c, "messageId")
	if err != nil {
		return err
	}

	rm, err := s.service.GetReadManagement(c.Request().Context(), auth.CallerFromContext(c), targetUserID, messageID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toReadManagementResp(rm))
}

func (s *HTTPServer) UpdateReadManagement(c echo.Context) error {
	req := ReadManagementReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	rm, err := s.service.UpdateReadManagement(c.Request().Context(), auth.CallerFromContext(c), req.TargetUserID, req.MessageID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toReadManagementResp(rm))
}

func (s *HTTPServer) GetGroup(c echo.Context) error {
	group, err := s.service.GetGroup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toGroupResp(group))
}

func (s *HTTPServer) CreateGroup(c echo.Context) error {
	req := GroupReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	group, err := s.service.CreateGroup(c.Request().Context(), auth.CallerFromContext(c), service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toGroupResp(group))
}

func (s *HTTPServer) UpdateGroup(c echo.Context) error {
	req := GroupPatchReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	group, err := s.service.UpdateGroup(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"), service.UpdateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toGroupResp(group))
}

func (s *HTTPServer) DeleteGroup(c echo.Context) error {
	group, err := s.service.DeleteGroup(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toGroupResp(group))
}

func (s *HTTPServer) GetUserGroupRelations(c echo.Context) error {
	relations, err := s.service.GetUserGroupRelations(
		c.Request().Context(),
		optionalQueryParam(c, "userId"),
		optionalQueryParam(c, "groupId"),
	)
	if err != nil {
		return httpError(err)
	}

	resp := make([]UserGroupRelationResp, len(relations))
	for i := range relations {
		resp[i] = toUserGroupRelationResp(&relations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CreateUserGroupRelation(c echo.Context) error {
	req := UserGroupRelationReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	relation, err := s.service.CreateUserGroupRelation(c.Request().Context(), auth.CallerFromContext(c), req.UserID, req.GroupID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserGroupRelationResp(relation))
}

func (s *HTTPServer) DeleteUserGroupRelation(c echo.Context) error {
	userID, err := RequireQueryParam(c, "userId")
	if err != nil {
		return err
	}
	groupID, err := RequireQueryParam(c, "groupId")
	if err != nil {
		return err
	}

	relation, err := s.service.DeleteUserGroupRelation(c.Request().Context(), auth.CallerFromContext(c), userID, groupID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserGroupRelationResp(relation))
}

func (s *HTTPServer) GetFavorites(c echo.Context) error {
	favorites, err := s.service.GetFavorites(
		c.Request().Context(),
		optionalQueryParam(c, "createdUserId"),
		optionalQueryParam(c, "postId"),
	)
	if err != nil {
		return httpError(err)
	}

	resp := make([]FavoriteResp, len(favorites))
	for i := range favorites {
		resp[i] = toFavoriteResp(&favorites[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CreateFavorite(c echo.Context) error {
	req := FavoriteReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	favorite, err := s.service.CreateFavorite(c.Request().Context(), auth.CallerFromContext(c), req.PostID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toFavoriteResp(favorite))
}

func (s *HTTPServer) DeleteFavorite(c echo.Context) error {
	favorite, err := s.service.DeleteFavorite(c.Request().Context(), auth.CallerFromContext(c), c.Param("postId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toFavoriteResp(favorite))
}

func (s *HTTPServer) GetRoomsByLoginUserID(c echo.Context) error {
	rooms, err := s.service.GetRoomsByLoginUserID(c.Request().Context(), auth.CallerFromContext(c))
	if err != nil {
		return httpError(err)
	}

	resp := make([]RoomResp, len(rooms))
	for i := range rooms {
		resp[i] = toRoomResp(&rooms[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CreateRoom(c echo.Context) error {
	req := RoomReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := s.service.CreateRoom(c.Request().Context(), auth.CallerFromContext(c), req.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

func (s *HTTPServer) GetTargetRoomMember(c echo.Context) error {
	member, err := s.service.GetTargetRoomMember(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toRoomMemberResp(member))
}

func (s *HTTPServer) GetMessages(c echo.Context) error {
	messages, err := s.service.GetMessages(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	resp := make([]MessageResp, len(messages))
	for i := range messages {
		resp[i] = toMessageResp(&messages[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CreateMessage(c echo.Context) error {
	req := MessageReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := s.service.CreateMessage(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"), req.Body)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toMessageResp(message))
}

func (s *HTTPServer) GetNotifications(c echo.Context) error {
	notifications, err := s.service.GetNotifications(c.Request().Context(), auth.CallerFromContext(c))
	if err != nil {
		return httpError(err)
	}

	resp := make([]NotificationResp, len(notifications))
	for i := range notifications {
		resp[i] = toNotificationResp(&notifications[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) CheckNotification(c echo.Context) error {
	notification, err := s.service.CheckNotification(c.Request().Context(), auth.CallerFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toNotificationResp(notification))
}

func (s *HTTPServer) CreateAttachment(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	attachment, err := s.service.CreateAttachment(
		c.Request().Context(),
		auth.CallerFromContext(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		content,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, AttachmentResp{ID: attachment.ID, URL: attachment.URL})
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func RequireQueryParam(c echo.Context, name string) (string, error) {
	value := c.QueryParam(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "query param '"+name+"' is required")
	}
	return value, nil
}

func optionalQueryParam(c echo.Context, name string) *string {
	value := c.QueryParam(name)
	if value == "" {
		return nil
	}
	return &value
}

// httpError translates the error kinds into response codes; everything else
// bubbles up as a 500 through echo's error handler.
func httpError(err error) error {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return err
}

func toUserResp(user *db.User) UserResp {
	return UserResp{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Description: user.Description,
		IconImage:   user.IconImage,
	}
}

func toPostResp(post *db.Post) PostResp {
	return PostResp{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		Category:      post.Category,
		IsPrivate:     post.IsPrivate,
		BgImage:       post.BgImage,
		CreatedUserID: post.CreatedUserID,
		GroupID:       post.GroupID,
	}
}

func toTagPostRelationResp(relation *db.TagPostRelation) TagPostRelationResp {
	return TagPostRelationResp{
		ID:     relation.ID,
		TagID:  relation.TagID,
		PostID: relation.PostID,
		Tag:    TagResp{ID: relation.Tag.ID, Name: relation.Tag.Name},
		Post:   toPostResp(&relation.Post),
	}
}

func toReadManagementResp(rm *db.ReadManagement) ReadManagementResp {
	return ReadManagementResp{
		ID:           rm.ID,
		TargetUserID: rm.TargetUserID,
		MessageID:    rm.MessageID,
		IsRead:       rm.IsRead,
	}
}

func toGroupResp(group *db.Group) GroupResp {
	return GroupResp{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Image:       group.Image,
		AdminUserID: group.AdminUserID,
		ProductID:   group.ProductID,
	}
}

func toUserGroupRelationResp(relation *db.UserGroupRelation) UserGroupRelationResp {
	return UserGroupRelationResp{
		ID:      relation.ID,
		UserID:  relation.UserID,
		GroupID: relation.GroupID,
		User:    toUserResp(&relation.User),
		Group:   toGroupResp(&relation.Group),
	}
}

func toRoomResp(room *db.Room) RoomResp {
	members := make([]RoomMemberResp, len(room.Members))
	for i := range room.Members {
		members[i] = toRoomMemberResp(&room.Members[i])
	}
	return RoomResp{
		ID:      room.ID,
		GroupID: room.GroupID,
		Members: members,
	}
}

func toRoomMemberResp(member *db.RoomMember) RoomMemberResp {
	return RoomMemberResp{
		ID:     member.ID,
		RoomID: member.RoomID,
		UserID: member.UserID,
		User:   toUserResp(&member.User),
	}
}

func toMessageResp(message *db.Message) MessageResp {
	return MessageResp{
		ID:     message.ID,
		RoomID: message.RoomID,
		UserID: message.UserID,
		Body:   message.Body,
		User:   toUserResp(&message.User),
	}
}

func toNotificationResp(notification *db.Notification) NotificationResp {
	return NotificationResp{
		ID:           notification.ID,
		TargetUserID: notification.TargetUserID,
		Message:      notification.Message,
		URL:          notification.URL,
		IsChecked:    notification.IsChecked,
	}
}

func toFavoriteResp(favorite *db.Favorite) FavoriteResp {
	return FavoriteResp{
		ID:            favorite.ID,
		CreatedUserID: favorite.CreatedUserID,
		PostID:        favorite.PostID,
		Post:          toPostResp(&favorite.Post),
	}
}
