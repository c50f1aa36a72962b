// path: database/mongo.go
package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kevinke3/loket/config"
	"github.com/kevinke3/loket/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const countersCollection = "counters"

// MongoStore keeps one document per record. Insertion order is the _id
// order; the record id is kept in its own indexed field.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
	mu     sync.Mutex
}

type mongoTarget struct {
	Mode   string
	URI    string
	DBName string
}

// ConnectMongo dials, pings and prepares indexes.
func ConnectMongo(ctx context.Context, cfg config.Mongo, logger *zap.Logger) (*MongoStore, error) {
	target, reason := resolveMongo(cfg, logger)
	if cfg.Debug {
		logger.Debug("mongo: env snapshot", zap.String("env", envSnapshot(cfg)))
	}

	start := time.Now()
	logger.Info("mongo: connecting",
		zap.String("mode", target.Mode),
		zap.String("uri", redactURI(target.URI)),
		zap.String("db", target.DBName),
		zap.String("reason", reason),
	)

	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	c, err := mongo.Connect(dctx, options.Client().ApplyURI(target.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err = c.Ping(dctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &MongoStore{client: c, db: c.Database(target.DBName), logger: logger}
	if err := s.createIndexes(ctx); err != nil {
		logger.Warn("mongo: index creation warnings", zap.Error(err))
	}

	logger.Info("mongo: connected", zap.Duration("took", time.Since(start).Round(time.Millisecond)))
	return s, nil
}

func (s *MongoStore) LoadMissing(ctx context.Context) ([]models.MissingPerson, error) {
	return loadMongo[models.MissingPerson](ctx, s.db, MissingPersons)
}

func (s *MongoStore) LoadFound(ctx context.Context) ([]models.FoundPerson, error) {
	return loadMongo[models.FoundPerson](ctx, s.db, FoundPersons)
}

// SaveMissing replaces every document. A standalone server gives no
// transaction here, so a concurrent reader can see the collection empty.
func (s *MongoStore) SaveMissing(ctx context.Context, records []models.MissingPerson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveMongo(ctx, s.db, MissingPersons, records)
}

func (s *MongoStore) SaveFound(ctx context.Context, records []models.FoundPerson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveMongo(ctx, s.db, FoundPersons, records)
}

func (s *MongoStore) AppendMissing(ctx context.Context, p models.MissingPerson) (models.MissingPerson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.db.Collection(string(MissingPersons))
	maxID, err := s.maxID(ctx, col)
	if err != nil {
		return models.MissingPerson{}, err
	}

	// $max then $inc: both are atomic on the server, so several processes
	// sharing the database still never draw the same id.
	counters := s.db.Collection(countersCollection)
	filter := bson.D{{Key: "_id", Value: string(MissingPersons)}}
	if _, err := counters.UpdateOne(ctx, filter,
		bson.D{{Key: "$max", Value: bson.D{{Key: "value", Value: maxID}}}},
		options.Update().SetUpsert(true),
	); err != nil {
		return models.MissingPerson{}, fmt.Errorf("reconcile counter: %w", err)
	}
	var counter struct {
		Value int `bson:"value"`
	}
	err = counters.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$inc", Value: bson.D{{Key: "value", Value: 1}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return models.MissingPerson{}, fmt.Errorf("increment counter: %w", err)
	}

	p.ID = counter.Value
	if _, err := col.InsertOne(ctx, p); err != nil {
		return models.MissingPerson{}, fmt.Errorf("insert %s: %w", MissingPersons, err)
	}
	return p, nil
}

func (s *MongoStore) Exists(ctx context.Context, c Collection) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: string(c)}})
	if err != nil {
		return false, fmt.Errorf("list collections: %w", err)
	}
	return len(names) > 0, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) maxID(ctx context.Context, col *mongo.Collection) (int, error) {
	var top struct {
		ID int `bson:"id"`
	}
	err := col.FindOne(ctx, bson.D{},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(bson.D{{Key: "id", Value: 1}}),
	).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read max id: %w", err)
	}
	return top.ID, nil
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	ctxIdx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []string
	col := s.db.Collection(string(MissingPersons))

	if _, err := col.Indexes().CreateOne(ctxIdx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
	}); err != nil {
		errs = append(errs, "id: "+err.Error())
	}
	if _, err := col.Indexes().CreateOne(ctxIdx, mongo.IndexModel{
		Keys: bson.D{{Key: "region", Value: 1}},
	}); err != nil {
		errs = append(errs, "region: "+err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func loadMongo[T any](ctx context.Context, db *mongo.Database, c Collection) ([]T, error) {
	cur, err := db.Collection(string(c)).Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c, err)
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}
	return out, nil
}

func saveMongo[T any](ctx context.Context, db *mongo.Database, c Collection, records []T) error {
	exists, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: string(c)}})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(exists) == 0 {
		if err := db.CreateCollection(ctx, string(c)); err != nil {
			return fmt.Errorf("create %s: %w", c, err)
		}
	}

	col := db.Collection(string(c))
	if _, err := col.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear %s: %w", c, err)
	}
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, len(records))
	for i := range records {
		docs[i] = records[i]
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("write %s: %w", c, err)
	}
	return nil
}

// --- connection resolution ---

// resolveMongo returns the chosen target and a human-readable reason.
// Precedence in auto mode: remote > explicit > local.
func resolveMongo(cfg config.Mongo, logger *zap.Logger) (mongoTarget, string) {
	dbname := cfg.DBName
	explicit := strings.TrimSpace(cfg.URI)
	local := cfg.URILocal
	remote := strings.TrimSpace(cfg.URIRemote)

	switch cfg.Mode {
	case "local":
		return mongoTarget{Mode: "local", URI: chooseFirstNonEmpty(explicit, local), DBName: dbname},
			reasonLocal(explicit, local)
	case "remote":
		if remote != "" {
			return mongoTarget{Mode: "remote", URI: remote, DBName: dbname}, "MONGO_MODE=remote, using MONGO_URI_REMOTE"
		}
		logger.Warn("mongo: MONGO_MODE=remote but MONGO_URI_REMOTE empty; falling back to local")
		return mongoTarget{Mode: "local", URI: chooseFirstNonEmpty(explicit, local), DBName: dbname},
			"remote missing, fallback to explicit/local"
	default:
		if remote != "" {
			return mongoTarget{Mode: "remote", URI: remote, DBName: dbname}, "auto: MONGO_URI_REMOTE present"
		}
		if explicit != "" {
			return mongoTarget{Mode: "auto", URI: explicit, DBName: dbname}, "auto: MONGO_URI present"
		}
		return mongoTarget{Mode: "local", URI: local, DBName: dbname}, "auto: fallback to local"
	}
}

func redactURI(raw string) string {
	if raw == "" || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}

func chooseFirstNonEmpty(v1, v2 string) string {
	if strings.TrimSpace(v1) != "" {
		return v1
	}
	return v2
}

func reasonLocal(explicit, local string) string {
	if strings.TrimSpace(explicit) != "" {
		return "MONGO_MODE=local with explicit MONGO_URI"
	}
	if local != "" {
		return "MONGO_MODE=local using MONGO_URI_LOCAL/default"
	}
	return "MONGO_MODE=local (no URI provided)"
}

func envSnapshot(cfg config.Mongo) string {
	fields := []string{
		"MONGO_MODE=" + cfg.Mode,
		"MONGO_DB=" + cfg.DBName,
		"MONGO_URI=" + redactURI(cfg.URI),
		"MONGO_URI_LOCAL=" + redactURI(cfg.URILocal),
		"MONGO_URI_REMOTE=" + redactURI(cfg.URIRemote),
	}
	return strings.Join(fields, " ")
}
