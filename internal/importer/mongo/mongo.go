package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"playstrategy.org/puzzletools/internal/importer"
	"playstrategy.org/puzzletools/internal/puzzles"
)

type collection interface {
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, doc bson.M) error
}

type connector func(ctx context.Context) (collection, func(context.Context) error, error)

// Importer inserts puzzles with the Go driver instead of going through
// mongosh. Each file gets its own connection.
type Importer struct {
	connect connector
	newID   puzzles.IDGenerator
}

type driverCollection struct {
	coll *mongo.Collection
}

func (d driverCollection) Exists(ctx context.Context, id string) (bool, error) {
	err := d.coll.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d driverCollection) Insert(ctx context.Context, doc bson.M) error {
	_, err := d.coll.InsertOne(ctx, doc)
	return err
}

func NewImporter(c *Config) (*Importer, error) {
	if c == nil {
		return nil, errors.New("need mongo config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	connect := func(ctx context.Context) (collection, func(context.Context) error, error) {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(c.Database).Collection(c.Collection)
		return driverCollection{coll}, client.Disconnect, nil
	}
	return &Importer{connect: connect, newID: puzzles.RandomID}, nil
}

func (m *Importer) Import(ctx context.Context, path string) (importer.Result, error) {
	var out strings.Builder
	err := m.importFile(ctx, path, &out)
	if ctx.Err() != nil {
		return importer.Result{Output: out.String()}, ctx.Err()
	}
	if err != nil {
		fmt.Fprintf(&out, "Import failed: %v", err)
		return importer.Result{OK: false, Output: out.String()}, nil
	}
	out.WriteString("Import complete.")
	return importer.Result{OK: true, Output: out.String()}, nil
}

func (m *Importer) importFile(ctx context.Context, path string, out *strings.Builder) error {
	docs, err := readPuzzles(path)
	if err != nil {
		return err
	}
	coll, disconnect, err := m.connect(ctx)
	if err != nil {
		return fmt.Errorf("error connecting: %w", err)
	}
	defer func() {
		if err := disconnect(ctx); err != nil {
			log.Warn("error disconnecting from mongo", "err", err)
		}
	}()
	for _, doc := range docs {
		puzzles.ApplyDefaults(doc)
		id, err := puzzles.UniqueID(m.newID, func(id string) (bool, error) {
			return coll.Exists(ctx, id)
		})
		if err != nil {
			return err
		}
		doc["_id"] = id
		if err := coll.Insert(ctx, bson.M(doc)); err != nil {
			return fmt.Errorf("error inserting puzzle %v: %w", id, err)
		}
		fmt.Fprintf(out, "Inserted puzzle with id: %v\n", id)
	}
	return nil
}

// readPuzzles decodes the file as relaxed extended JSON so integers stay
// integers in the stored documents.
func readPuzzles(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if stripped, err := puzzles.StripAssignment(data); err == nil {
		data = stripped
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("error parsing %v: %w", path, err)
	}
	docs := make([]map[string]any, 0, len(raws))
	for i, raw := range raws {
		var doc bson.M
		if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
			return nil, fmt.Errorf("error parsing puzzle %d in %v: %w", i, path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
