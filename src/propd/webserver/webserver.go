package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/quorumdao/govproposals/src/propd/config"
	"github.com/quorumdao/govproposals/src/shared/gov"
)

func New(cfg config.Config, store *gov.Store, rdb *redis.Client) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, store, rdb)
	return g
}

func attachRoutes(r *gin.Engine, cfg config.Config, store *gov.Store, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authH := NewAuth(rdb, []byte(cfg.JWTSecret))
	propH := NewProposals(store)
	voteH := NewVotes(store)
	limiter := NewRateLimiter(30, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/challenge", authH.Challenge)
		v1.POST("/auth/verify", authH.Verify)

		v1.GET("/proposals", propH.List)
		v1.GET("/proposals/count", propH.Count)
		v1.GET("/proposals/:id", propH.Get)
		v1.GET("/authors/:addr/proposals", propH.ByAuthor)
		v1.GET("/authors/:addr/count", propH.AuthorCount)

		secured := v1.Group("")
		secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)), RateLimitMiddleware(limiter))
		secured.POST("/proposals", propH.Create)
		secured.POST("/votes", voteH.Cast)
		secured.GET("/votes/:id", voteH.MyVote)
		secured.GET("/votes/:id/status", voteH.Status)
	}
}
