package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/api/handlers"
	middlewares "github.com/prefeitura-rio/app-ferramentas/internal/middleware"
)

// Autenticador emite e confere os tokens
type Autenticador interface {
	handlers.AuthServico
	middlewares.ValidadorToken
}

// Migracoes informa o estado do schema para o bloqueio de escrita e para o admin
type Migracoes interface {
	handlers.StatusMigracoes
	middlewares.VerificadorMigracao
}

// Dependencias reúne o que o router precisa. Identificacao pode ser nil.
type Dependencias struct {
	Logger      *zap.Logger
	ServiceName string

	Auth          Autenticador
	Ferramentas   handlers.FerramentaServico
	Identificacao handlers.IdentificacaoServico
	Emprestimos   handlers.EmprestimoServico
	Dashboard     handlers.DashboardServico

	Migracoes    Migracoes
	VersaoSchema string

	ChecagensObrigatorias map[string]handlers.Checagem
	ChecagensOpcionais    map[string]handlers.Checagem
}

func SetupRouter(deps Dependencias) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(middlewares.RequestLogger(deps.Logger))
	r.Use(middlewares.RequestTiming(deps.ServiceName))
	if deps.Migracoes != nil {
		r.Use(middlewares.NewMigrationLockMiddleware(deps.Migracoes).BlockCUD())
	}

	authHandler := handlers.NewAuthHandler(deps.Auth)
	ferramentaHandler := handlers.NewFerramentaHandler(deps.Ferramentas, deps.Identificacao)
	categoryHandler := handlers.NewCategoryHandler(deps.Ferramentas)
	emprestimoHandler := handlers.NewEmprestimoHandler(deps.Emprestimos)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)
	healthHandler := handlers.NewHealthHandler(deps.ChecagensObrigatorias, deps.ChecagensOpcionais)

	autenticado := middlewares.JWTAuthMiddleware(deps.Auth)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/check", autenticado, authHandler.Check)
		auth.PUT("/users/:id", autenticado, middlewares.RequireOwnership("id"), authHandler.UpdateUser)
		auth.PUT("/users/:id/senha", autenticado, middlewares.RequireOwnership("id"), authHandler.ChangePassword)
	}

	api.GET("/categorias", categoryHandler.GetCategories)

	ferramentas := api.Group("/ferramentas")
	{
		ferramentas.GET("", ferramentaHandler.List)
		ferramentas.GET("/grupos", ferramentaHandler.ListGroups)
		ferramentas.GET("/mais-utilizadas", ferramentaHandler.MostUsed)
		ferramentas.GET("/categoria/:categoryId", ferramentaHandler.ListByCategory)
		ferramentas.GET("/qrcode", ferramentaHandler.ResolveQRCode)
		ferramentas.GET("/:id", ferramentaHandler.Get)
		ferramentas.GET("/:id/grupo", ferramentaHandler.GetGroup)

		ferramentas.POST("", autenticado, ferramentaHandler.Create)
		ferramentas.POST("/sem-patrimonio", autenticado, ferramentaHandler.CreateWithoutTag)
		ferramentas.POST("/upload", autenticado, ferramentaHandler.Upload)
		ferramentas.POST("/identificar", autenticado, ferramentaHandler.Identify)
		ferramentas.POST("/excluir", autenticado, ferramentaHandler.BulkDelete)
		ferramentas.PUT("/:id", autenticado, ferramentaHandler.Update)
		ferramentas.PUT("/:id/qrcode", autenticado, ferramentaHandler.UpdateQRCode)
		ferramentas.DELETE("/:id", autenticado, ferramentaHandler.Delete)
	}

	emprestimos := api.Group("/emprestimos")
	{
		emprestimos.GET("/aberto/:ferramenta_id", emprestimoHandler.OpenLoan)
		emprestimos.POST("", autenticado, emprestimoHandler.Borrow)
		emprestimos.PUT("/:id/devolucao", autenticado, emprestimoHandler.Return)
		emprestimos.GET("/meus", autenticado, emprestimoHandler.MyLoans)
		emprestimos.POST("/devolver-grupo/:ferramenta_id", autenticado, emprestimoHandler.ReturnGroup)
	}

	dashboard := api.Group("/dashboard", autenticado)
	{
		dashboard.GET("", dashboardHandler.Stats)
		dashboard.GET("/exportar", dashboardHandler.Export)
	}

	if deps.Migracoes != nil {
		migrationHandler := handlers.NewMigrationHandler(deps.Migracoes, deps.VersaoSchema)
		api.GET("/admin/migracoes", autenticado, migrationHandler.GetStatus)
	}

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
