package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/poseidoncap/refdata/pkg/config"
	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server/store"
	gormstore "github.com/poseidoncap/refdata/pkg/server/store/gorm"
	"github.com/poseidoncap/refdata/pkg/token"
)

// Stores bundles the data access layer handed to the endpoints.
type Stores struct {
	Bids        store.Crud[model.Bid]
	CurvePoints store.Crud[model.CurvePoint]
	Ratings     store.Crud[model.Rating]
	RuleNames   store.Crud[model.RuleName]
	Trades      store.Crud[model.Trade]
	Users       store.UsersStore
	Health      store.HealthStore
}

// NewStores builds gorm-backed stores over the given connection.
func NewStores(db *gorm.DB) Stores {
	return Stores{
		Bids:        gormstore.NewCrudStore[model.Bid](db),
		CurvePoints: gormstore.NewCrudStore[model.CurvePoint](db),
		Ratings:     gormstore.NewCrudStore[model.Rating](db),
		RuleNames:   gormstore.NewCrudStore[model.RuleName](db),
		Trades:      gormstore.NewCrudStore[model.Trade](db),
		Users:       gormstore.NewUsersStore(db),
		Health:      gormstore.NewHealthStore(db),
	}
}

type Server struct {
	Router   *mux.Router
	DB       *gorm.DB
	Stores   Stores
	Identity identity.Provider
	Tokens   *token.Manager
	Config   *config.Config
	srv      *http.Server
}

func NewServer(
	db *gorm.DB,
	stores Stores,
	provider identity.Provider,
	tokens *token.Manager,
	cfg *config.Config,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:   router,
		DB:       db,
		Stores:   stores,
		Identity: provider,
		Tokens:   tokens,
		Config:   cfg,
		srv:      srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
