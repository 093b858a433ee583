package stubserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"asempv/internal/domain"
	"asempv/internal/logging"
)

const (
	DefaultAddr     = "127.0.0.1:8080"
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Options configures a Server. Zero values take defaults.
type Options struct {
	Addr       string
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// BcryptCost is lowered by tests; production hashing cost otherwise.
	BcryptCost int
	Log        *slog.Logger
}

// Server serves Fixtures over the backend API.
type Server struct {
	addr   string
	log    *slog.Logger
	tokens *issuer
	users  map[string]user

	mu        sync.RWMutex
	inverters []domain.Inverter
	partners  map[domain.InverterID]string
	dataTypes []domain.DataType
	samples   map[domain.InverterID][]domain.EnergyData

	srvMu    sync.Mutex
	server   *http.Server
	shutdown bool
}

// New builds a server over f. It does not listen until Start or Serve.
func New(f Fixtures, opts Options) (*Server, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Secret == "" {
		opts.Secret = "asempv-stub-secret"
	}
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = 15 * time.Minute
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	users, err := hashUsers(f.Users, opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr: opts.Addr,
		log:  logging.OrDiscard(opts.Log),
		tokens: &issuer{
			secret:     []byte(opts.Secret),
			accessTTL:  opts.AccessTTL,
			refreshTTL: opts.RefreshTTL,
			now:        time.Now,
		},
		users:    users,
		partners: make(map[domain.InverterID]string, len(f.Inverters)),
		samples:  make(map[domain.InverterID][]domain.EnergyData, len(f.Inverters)),
	}
	for _, fi := range f.Inverters {
		inv := fi.inverter()
		s.inverters = append(s.inverters, inv)
		s.partners[inv.ID] = fi.Partner
		s.samples[inv.ID] = generateSamples(inv.ID, f.DataTypes, f.SamplesPerInverter)
	}
	for _, dt := range f.DataTypes {
		s.dataTypes = append(s.dataTypes, dt.dataType())
	}
	return s, nil
}

// Handler returns the gin engine with every route installed.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	v2 := r.Group("/api/v2")
	v2.POST("/auth/login/", s.handleLogin)
	v2.POST("/auth/refresh/", s.handleRefresh)

	authed := v2.Group("/", s.requireAccess())
	authed.GET("/inverters/", s.handleInverters)
	authed.GET("/inverters/:id/", s.handleInverter)
	authed.GET("/inverters/:id/realtime/", s.handleRealtime)
	authed.GET("/inverters/:id/statistics/", s.handleStatistics)
	authed.GET("/inverters/:id/data/", s.handleEnergyData)
	authed.GET("/dashboard/", s.handleDashboard)
	authed.GET("/data-types/", s.handleDataTypes)
	authed.GET("/data-types/:id/", s.handleDataType)
	return r
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	s.srvMu.Lock()
	if s.shutdown {
		s.srvMu.Unlock()
		return ln.Close()
	}
	s.server = hs
	s.srvMu.Unlock()

	s.log.Info("stub.listening", "addr", ln.Addr().String())
	if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Shutdown stops the server gracefully. A later Serve returns at once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.srvMu.Lock()
	hs := s.server
	s.shutdown = true
	s.srvMu.Unlock()
	if hs == nil {
		return nil
	}
	return hs.Shutdown(ctx)
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("stub.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"request_id", c.GetHeader("X-Request-ID"),
			"duration", time.Since(start),
		)
	}
}

// requireAccess rejects requests without a valid access token.
func (s *Server) requireAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		claims, err := s.tokens.parse(tokenString, tokenAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type"})
			return
		}
		c.Set("username", claims.Subject)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}
	u, ok := s.users[req.Username]
	if !ok || !u.check(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}
	s.issuePair(c, u.name)
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "refresh is required"})
		return
	}
	claims, err := s.tokens.parse(req.Refresh, tokenRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}
	s.issuePair(c, claims.Subject)
}

func (s *Server) issuePair(c *gin.Context, username string) {
	access, refresh, err := s.tokens.pair(username)
	if err != nil {
		s.log.Error("stub.mint_failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

func (s *Server) handleDashboard(c *gin.Context) {
	partner := c.Query("partner")

	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats domain.DashboardStats
	for _, inv := range s.inverters {
		if partner != "" && s.partners[inv.ID] != partner {
			continue
		}
		stats.TotalInverters++
		if inv.InverterMaxPower != nil {
			stats.TotalPower += *inv.InverterMaxPower
		}
		for _, d := range s.samples[inv.ID] {
			if d.Measure == "W" {
				stats.TotalEnergy += d.Value
			}
		}
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleDataTypes(c *gin.Context) {
	q, ok := pageParams(c)
	if !ok {
		return
	}
	search := strings.ToLower(c.Query("search"))

	s.mu.RLock()
	var out []domain.DataType
	for _, dt := range s.dataTypes {
		if search == "" || strings.Contains(strings.ToLower(dt.Title), search) {
			out = append(out, dt)
		}
	}
	s.mu.RUnlock()

	if strings.TrimPrefix(c.Query("ordering"), "-") == "title" {
		desc := strings.HasPrefix(c.Query("ordering"), "-")
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Title > out[j].Title
			}
			return out[i].Title < out[j].Title
		})
	}
	writePage(c, out, q)
}

func (s *Server) handleDataType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.dataTypes) {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.dataTypes[id-1])
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}
