package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cardvault/config"
	"github.com/oksasatya/cardvault/internal/infrastructure/oauth"
	"github.com/oksasatya/cardvault/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	sessionManager *helpers.SessionManager
	oauthClient    *oauth.Client
	stateStore     *oauth.StateStore
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetSessions(m *helpers.SessionManager) { sessionManager = m }
func GetSessions() *helpers.SessionManager  { return sessionManager }

func SetOAuthClient(c *oauth.Client) { oauthClient = c }
func GetOAuthClient() *oauth.Client  { return oauthClient }

func SetOAuthStates(s *oauth.StateStore) { stateStore = s }
func GetOAuthStates() *oauth.StateStore  { return stateStore }
