package mirror

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

const (
	usersTable    = "users"
	patientsTable = "patients"

	// Source tags every mirrored patient with its provenance.
	Source = "web_form"

	errNotConnected    = "SurrealDB not connected"
	errPatientNotFound = "Patient not found"

	connectTimeout = 5 * time.Second
)

type Config struct {
	Endpoint  string
	Namespace string
	Database  string
	User      string
	Pass      string
}

// Store owns the document-store connection. A Store is always safe to
// use: when the connection could not be established the handle stays
// nil and every mutation degrades to a structured failure while every
// query returns an empty snapshot.
type Store struct {
	db  *surrealdb.DB
	log zerolog.Logger
}

// Connect establishes the mirror connection once, at startup. It never
// fails the caller: a missing endpoint, unreachable server or refused
// credentials are logged and yield a disconnected Store. There is no
// reconnect loop; if the store goes away mid-process the handle is not
// rebuilt.
func Connect(cfg Config, log zerolog.Logger) *Store {
	s := &Store{log: log}
	if cfg.Endpoint == "" {
		log.Error().Msg("mirror endpoint not configured, mirroring disabled")
		return s
	}
	db, err := dial(cfg)
	if err != nil {
		log.Error().Err(err).Str("endpoint", cfg.Endpoint).Msg("mirror connection failed")
		return s
	}
	s.db = db
	log.Info().Str("endpoint", cfg.Endpoint).Str("database", cfg.Database).Msg("mirror connected")
	s.declareIndexes(context.Background())
	return s
}

func dial(cfg Config) (*surrealdb.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	conf := connection.NewConfig(u)
	// SurrealDB speaks CBOR natively; the default codec mishandles
	// time.Time and RecordID values.
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	db, err := surrealdb.FromConnection(ctx, gorillaws.New(conf))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if cfg.User != "" {
		if _, err := db.SignIn(ctx, map[string]any{"user": cfg.User, "pass": cfg.Pass}); err != nil {
			return nil, fmt.Errorf("signin: %w", err)
		}
	}
	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}
	return db, nil
}

// Connected reports whether the handle still answers a round trip.
// False on any error; never propagates one.
func (s *Store) Connected(ctx context.Context) bool {
	if s.db == nil {
		return false
	}
	_, err := surrealdb.Query[any](ctx, s.db, "RETURN 1", nil)
	return err == nil
}

func (s *Store) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Close(ctx)
}

// failure maps a driver error onto the Result taxonomy. Unique index
// violations surface with the underlying message so the caller can see
// which key clashed.
func (s *Store) failure(err error) Result {
	msg := err.Error()
	if strings.Contains(msg, "already contains") {
		return failed(KindConstraint, msg)
	}
	return failed(KindDriver, msg)
}

// isNotFound recognizes the driver's record-absent errors, which the
// query façade treats as a regular miss.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Expected a single or multiple results but got 0") ||
		strings.Contains(msg, "cannot unmarshal array into Go value")
}

// firstBatch unwraps the first statement result of a query response.
func firstBatch[T any](res *[]surrealdb.QueryResult[[]T]) []T {
	if res == nil || len(*res) == 0 {
		return nil
	}
	return (*res)[0].Result
}
