// Package server exposes the analytics over a gin HTTP API and a
// gorilla WebSocket stream of live updates.
package server

import (
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/activity"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/broadcast"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/cache"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/logs"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/session"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/stats"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/status"
)

const (
	defaultEventLimit   = 50
	defaultChatLimit    = 30
	defaultHistoryDays  = 30
	defaultHistoryLimit = 500

	maxHistoryDays  = 90
	maxHistoryLimit = 2000

	cacheTTL        = 5 * time.Minute
	cacheMaxEntries = 100
)

// Server holds the gin engine and the analytics services it exposes.
type Server struct {
	engine   *gin.Engine
	scanner  *logs.Scanner
	sessions *session.Analyzer
	activity *activity.Analyzer
	resolver *status.Resolver
	stats    *stats.Service
	hub      *broadcast.Hub
	memo     *cache.Memo
	port     string
}

// New creates the web server wired to the given analytics services.
func New(scanner *logs.Scanner, sessions *session.Analyzer, act *activity.Analyzer, resolver *status.Resolver, st *stats.Service, hub *broadcast.Hub, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:   engine,
		scanner:  scanner,
		sessions: sessions,
		activity: act,
		resolver: resolver,
		stats:    st,
		hub:      hub,
		memo:     cache.New(cacheTTL, cacheMaxEntries),
		port:     port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")

	api.GET("/events", func(c *gin.Context) {
		limit := queryInt(c, "limit", defaultEventLimit, 1, maxHistoryLimit)
		c.JSON(http.StatusOK, s.scanner.RecentEvents(limit))
	})

	api.GET("/chat", func(c *gin.Context) {
		limit := queryInt(c, "limit", defaultChatLimit, 1, maxHistoryLimit)
		c.JSON(http.StatusOK, s.scanner.RecentChat(limit))
	})

	api.GET("/events/history", func(c *gin.Context) {
		days := queryInt(c, "days", defaultHistoryDays, 1, maxHistoryDays)
		limit := queryInt(c, "limit", defaultHistoryLimit, 1, maxHistoryLimit)
		c.JSON(http.StatusOK, s.scanner.HistoricalEvents(days, limit))
	})

	api.GET("/chat/history", func(c *gin.Context) {
		days := queryInt(c, "days", defaultHistoryDays, 1, maxHistoryDays)
		limit := queryInt(c, "limit", defaultHistoryLimit, 1, maxHistoryLimit)
		c.JSON(http.StatusOK, s.scanner.HistoricalChat(days, limit))
	})

	api.GET("/sessions", func(c *gin.Context) {
		days := queryInt(c, "days", defaultHistoryDays, 1, maxHistoryDays)
		result := cache.Do(s.memo, "sessions:"+strconv.Itoa(days), func() model.SessionStats {
			return s.sessions.SessionStats(days)
		})
		c.JSON(http.StatusOK, result)
	})

	api.GET("/activity", func(c *gin.Context) {
		days := queryInt(c, "days", defaultHistoryDays, 1, maxHistoryDays)
		result := cache.Do(s.memo, "activity:"+strconv.Itoa(days), func() model.ActivityStats {
			return s.activity.ActivityStats(days)
		})
		c.JSON(http.StatusOK, result)
	})

	api.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.resolver.Status())
	})

	api.GET("/stats", func(c *gin.Context) {
		result := cache.Do(s.memo, "stats", func() model.ServerStats {
			return s.stats.ServerStats()
		})
		c.JSON(http.StatusOK, result)
	})

	api.GET("/stats/player/:uuid", func(c *gin.Context) {
		player, ok := s.stats.PlayerStats(c.Param("uuid"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		c.JSON(http.StatusOK, player)
	})

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	// WebSocket.
	s.engine.GET("/ws", s.handleWebSocket)

	// pprof profiling endpoints.
	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/allocs", gin.WrapH(pprof.Handler("allocs")))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

// queryInt reads an integer query parameter, falling back to def and
// clamping the result into [min, max].
func queryInt(c *gin.Context, name string, def, min, max int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil {
		v = def
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
