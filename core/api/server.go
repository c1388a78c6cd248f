package api

import (
	"github.com/dryack/gDiceTable/core/dice"
	"github.com/dryack/gDiceTable/core/session"
	"github.com/dryack/gDiceTable/core/store"
	"github.com/dryack/gDiceTable/core/table"
	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/v2"
)

// Deps are the collaborators a Server needs. Cache, DB and Tables may be nil,
// in which case statistics are always simulated and uploaded tables only
// live in memory.
type Deps struct {
	Cache  store.Cache
	DB     store.Database
	Tables store.TableStore
	Holder *table.Holder
	Tokens *session.TokenManager
	Source dice.Source
}

type Server struct {
	config *koanf.Koanf
	router *gin.Engine
	cache  store.Cache
	db     store.Database
	tables store.TableStore
	holder *table.Holder
	tokens *session.TokenManager
	source dice.Source
}

func NewServer(cfg *koanf.Koanf, deps Deps) *Server {
	s := &Server{
		config: cfg,
		router: gin.Default(),
		cache:  deps.Cache,
		db:     deps.DB,
		tables: deps.Tables,
		holder: deps.Holder,
		tokens: deps.Tokens,
		source: deps.Source,
	}
	if s.holder == nil {
		s.holder = table.NewHolder(nil)
	}
	if s.source == nil {
		s.source = dice.DefaultSource
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/roll", s.handleDiceRoll)
		api.GET("/encode", s.handleEncodeExpression)
		api.GET("/tables", s.handleListTables)
		api.GET("/tables/:name/pick", s.handlePickTable)
		api.POST("/template", s.handleTemplate)
		api.POST("/tables", s.AuthMiddleware(), s.handleUploadTables)
	}
}

func (s *Server) Handler() *gin.Engine { return s.router }

func (s *Server) Run() error {
	return s.router.Run(s.config.String("server.address"))
}
