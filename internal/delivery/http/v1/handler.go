package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskwise/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleMe(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	HandleAdminMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTags(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleCreateProject(c *gin.Context)
	HandleGetProject(c *gin.Context)
	HandleGetProjects(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleDeleteProject(c *gin.Context)
	HandleAddProjectMember(c *gin.Context)
	HandleRemoveProjectMember(c *gin.Context)
	HandleGetDashboard(c *gin.Context)

	HandleCreateUser(c *gin.Context)
	HandleGetUsers(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	sessions services.SessionService
	users    services.UserService
	tasks    services.TaskService
	projects services.ProjectService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	userService services.UserService,
	taskService services.TaskService,
	projectService services.ProjectService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		auth:     authService,
		sessions: sessionService,
		users:    userService,
		tasks:    taskService,
		projects: projectService,
	}
}

// RegisterRoutes mounts every v1 endpoint under router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/refresh", h.HandleRefresh)
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/logout", h.HandleAuthMiddleware, h.HandleLogout)
	authRouter.GET("/me", h.HandleAuthMiddleware, h.HandleMe)

	taskRouter := router.Group("/tasks", h.HandleAuthMiddleware)
	taskRouter.GET("", h.HandleGetTasks)
	taskRouter.GET("/tags", h.HandleGetTags)
	taskRouter.POST("", h.HandleCreateTask)
	taskRouter.GET("/:id", h.HandleGetTask)
	taskRouter.PATCH("/:id", h.HandleUpdateTask)
	taskRouter.PATCH("/:id/status", h.HandleSetTaskStatus)
	taskRouter.DELETE("/:id", h.HandleDeleteTask)

	projectRouter := router.Group("/projects", h.HandleAuthMiddleware)
	projectRouter.GET("", h.HandleGetProjects)
	projectRouter.POST("", h.HandleCreateProject)
	projectRouter.GET("/:id", h.HandleGetProject)
	projectRouter.PATCH("/:id", h.HandleUpdateProject)
	projectRouter.DELETE("/:id", h.HandleDeleteProject)
	projectRouter.POST("/:id/members/:user_id", h.HandleAddProjectMember)
	projectRouter.DELETE("/:id/members/:user_id", h.HandleRemoveProjectMember)

	router.GET("/dashboard", h.HandleAuthMiddleware, h.HandleGetDashboard)

	userRouter := router.Group("/users", h.HandleAuthMiddleware, h.HandleAdminMiddleware)
	userRouter.POST("", h.HandleCreateUser)
	userRouter.GET("", h.HandleGetUsers)
	userRouter.GET("/:id", h.HandleGetUser)
	userRouter.PATCH("/:id", h.HandleUpdateUser)
	userRouter.DELETE("/:id", h.HandleDeleteUser)
}
